package utils

import (
	"context"
	"intake-service/internal/pkg/exceptions"
)

// RetryOnConflict runs fn until it succeeds, fails with anything other than
// a version conflict, or attempts are exhausted. Each attempt must reload
// the record it mutates.
func RetryOnConflict(ctx context.Context, attempts int, fn func(attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exceptions.ErrServerDeadlineExceeded(ctxErr)
		}
		err = fn(attempt)
		if err == nil || !exceptions.IsKind(err, exceptions.KindConflict) {
			return err
		}
	}
	return err
}
