package store

import (
	"context"
	"time"
)

// Dial settings for remote backends.
const (
	dialAttempts = 3
	dialDelay    = 250 * time.Millisecond
)

// retry runs fn up to attempts times, doubling delay after each failure.
// It returns the last error, or ctx.Err() if ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// dial connects to a remote backend, retrying transient failures.
func dial[S Store](ctx context.Context, connect func(context.Context) (S, error)) (S, error) {
	var s S
	err := retry(ctx, dialAttempts, dialDelay, func() error {
		var err error
		s, err = connect(ctx)
		return err
	})
	return s, err
}
