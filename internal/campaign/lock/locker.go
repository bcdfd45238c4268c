// Package lock provides per-campaign advisory locks so at most one
// moderation runs per campaign at a time. The engine itself needs no
// coordination; the lock only prevents duplicate history rows when a
// re-review races a create.
package lock

import (
	"context"
	"time"
)

// Locker acquires short-lived advisory locks. Acquire returns
// sentinel.ErrLocked when the key is already held; the release function is
// safe to call once, and the TTL bounds how long a crashed holder can block
// others.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
