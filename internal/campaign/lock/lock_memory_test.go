package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundguard/pkg/platform/sentinel"
)

func TestInMemoryLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire and release", func(t *testing.T) {
		locker := NewInMemoryLocker()

		release, err := locker.Acquire(ctx, "campaign-1", time.Minute)
		require.NoError(t, err)

		_, err = locker.Acquire(ctx, "campaign-1", time.Minute)
		assert.ErrorIs(t, err, sentinel.ErrLocked)

		release()

		release2, err := locker.Acquire(ctx, "campaign-1", time.Minute)
		require.NoError(t, err)
		release2()
	})

	t.Run("keys are independent", func(t *testing.T) {
		locker := NewInMemoryLocker()

		releaseA, err := locker.Acquire(ctx, "campaign-a", time.Minute)
		require.NoError(t, err)
		defer releaseA()

		releaseB, err := locker.Acquire(ctx, "campaign-b", time.Minute)
		require.NoError(t, err)
		defer releaseB()
	})

	t.Run("expired lock can be reacquired", func(t *testing.T) {
		locker := NewInMemoryLocker()

		_, err := locker.Acquire(ctx, "campaign-ttl", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		release, err := locker.Acquire(ctx, "campaign-ttl", time.Minute)
		require.NoError(t, err)
		release()
	})

	t.Run("stale release does not unlock new holder", func(t *testing.T) {
		locker := NewInMemoryLocker()

		staleRelease, err := locker.Acquire(ctx, "campaign-stale", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		release, err := locker.Acquire(ctx, "campaign-stale", time.Minute)
		require.NoError(t, err)
		defer release()

		staleRelease()

		_, err = locker.Acquire(ctx, "campaign-stale", time.Minute)
		assert.ErrorIs(t, err, sentinel.ErrLocked)
	})
}
