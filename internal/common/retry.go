package common

import (
	"context"
	"time"
)

// RetryRead runs fn up to attempts times with doubling backoff, stopping
// early when the context ends. Use it for idempotent reads only; writes must
// not be retried through this helper.
func RetryRead(ctx context.Context, attempts int, initialBackoff time.Duration, fn func() error) error {
	var err error
	backoff := initialBackoff

	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
