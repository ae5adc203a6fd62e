package assignments

import (
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"
)

const (
	lockAcquireAttempts = 5
	lockRetryDelay      = 100 * time.Millisecond
)

// AccountLock serialises work that reads or fans out an account's doctor.
// Reassignment and new submissions for the account take the same key.
type AccountLock struct {
	locker contracts.LockerService
	key    string
	value  string
}

// LockAccount waits briefly for a holder of the account's lock before
// giving up with a lock error. A zero retryDelay uses the default.
func LockAccount(ctx context.Context, locker contracts.LockerService, accountID string, ttl, retryDelay time.Duration) (*AccountLock, error) {
	if retryDelay <= 0 {
		retryDelay = lockRetryDelay
	}
	key := fmt.Sprintf(constvars.RedisKeyAssignmentLockFormat, accountID)

	for attempt := 1; attempt <= lockAcquireAttempts; attempt++ {
		acquired, value, err := locker.TryLock(ctx, key, ttl)
		if err != nil {
			return nil, err
		}
		if acquired {
			return &AccountLock{locker: locker, key: key, value: value}, nil
		}

		select {
		case <-ctx.Done():
			return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(retryDelay):
		}
	}
	return nil, exceptions.ErrLockNotAcquired(key)
}

func (l *AccountLock) Key() string {
	return l.key
}

// Release frees the lock even when ctx is already cancelled.
func (l *AccountLock) Release(ctx context.Context) error {
	return l.locker.Unlock(context.WithoutCancel(ctx), l.key, l.value)
}
