package assignments

import (
	"context"
	"errors"
	"intake-service/internal/app/contracts/mocks"
	"intake-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLockAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquires And Releases The Account Key", func(t *testing.T) {
		locker := new(mocks.MockLockerService)
		locker.On("TryLock", ctx, lockKey, time.Second).Return(true, "token", nil).Once()
		locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()

		lock, err := LockAccount(ctx, locker, "acc-1", time.Second, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, lockKey, lock.Key())
		require.NoError(t, lock.Release(ctx))

		locker.AssertExpectations(t)
	})

	t.Run("Waits For The Holder", func(t *testing.T) {
		locker := new(mocks.MockLockerService)
		locker.On("TryLock", ctx, lockKey, time.Second).Return(false, "", nil).Twice()
		locker.On("TryLock", ctx, lockKey, time.Second).Return(true, "token", nil).Once()

		_, err := LockAccount(ctx, locker, "acc-1", time.Second, time.Millisecond)

		require.NoError(t, err)
		locker.AssertNumberOfCalls(t, "TryLock", 3)
	})

	t.Run("Gives Up After Bounded Attempts", func(t *testing.T) {
		locker := new(mocks.MockLockerService)
		locker.On("TryLock", ctx, lockKey, time.Second).Return(false, "", nil)

		_, err := LockAccount(ctx, locker, "acc-1", time.Second, time.Millisecond)

		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		locker.AssertNumberOfCalls(t, "TryLock", lockAcquireAttempts)
	})

	t.Run("Redis Error Is Returned", func(t *testing.T) {
		locker := new(mocks.MockLockerService)
		locker.On("TryLock", ctx, lockKey, time.Second).Return(false, "", errors.New("redis down")).Once()

		_, err := LockAccount(ctx, locker, "acc-1", time.Second, time.Millisecond)

		assert.EqualError(t, err, "redis down")
	})

	t.Run("Release Survives A Cancelled Context", func(t *testing.T) {
		locker := new(mocks.MockLockerService)
		locker.On("TryLock", mock.Anything, lockKey, time.Second).Return(true, "token", nil).Once()
		locker.On("Unlock", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), lockKey, "token").Return(nil).Once()

		cancelled, cancel := context.WithCancel(ctx)
		lock, err := LockAccount(cancelled, locker, "acc-1", time.Second, time.Millisecond)
		require.NoError(t, err)
		cancel()

		require.NoError(t, lock.Release(cancelled))
		locker.AssertExpectations(t)
	})
}
