package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fundguard/pkg/platform/sentinel"
)

const lockKeyPrefix = "fundguard:lock:"

// RedisLocker is the production implementation for distributed deployments
// where multiple instances may moderate the same campaign. SET NX with a
// TTL gives atomic acquire-with-expiry; release deletes the key only if the
// holder token still matches, so an expired lock is never released by a
// stale holder.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	fullKey := lockKeyPrefix + key

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sentinel.ErrLocked
	}

	release := func() {
		// Best effort; the TTL reclaims the lock if this fails.
		_ = releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{fullKey}, token).Err()
	}
	return release, nil
}
