package tweetlate

import (
	"context"
	"errors"
)

// ErrNoAttempts is returned by WithRetries when maxAttempts is zero or
// negative; the operation is never invoked.
var ErrNoAttempts = errors.New("retry: no attempts permitted")

// DefaultMaxAttempts bounds feed and translation calls in the refresh
// pipeline.
const DefaultMaxAttempts = 3

// RetryFunc is an operation that can be re-invoked.
type RetryFunc[T any] func() (T, error)

// WithRetries invokes fn up to maxAttempts times, returning the first
// successful result. A non-retryable error (see IsRetryable) aborts
// immediately; after exhaustion the last error is returned. Attempts are
// sequential with no delay between them.
func WithRetries[T any](ctx context.Context, maxAttempts int, fn RetryFunc[T]) (T, error) {
	var zero T

	if maxAttempts <= 0 {
		return zero, ErrNoAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}
