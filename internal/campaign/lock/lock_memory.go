package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fundguard/pkg/platform/sentinel"
)

// InMemoryLocker is a single-process locker for development and tests. It
// mirrors the Redis locker's semantics: release is compare-and-delete on a
// holder token, so a release after the TTL lapsed never drops a newer
// holder's lock.
type InMemoryLocker struct {
	mu    sync.Mutex
	locks map[string]memoryLock
}

type memoryLock struct {
	token  string
	expiry time.Time
}

func NewInMemoryLocker() *InMemoryLocker {
	return &InMemoryLocker{locks: make(map[string]memoryLock)}
}

func (l *InMemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if held, ok := l.locks[key]; ok && now.Before(held.expiry) {
		return nil, sentinel.ErrLocked
	}
	token := uuid.NewString()
	l.locks[key] = memoryLock{token: token, expiry: now.Add(ttl)}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if held, ok := l.locks[key]; ok && held.token == token {
			delete(l.locks, key)
		}
	}
	return release, nil
}
