package cache

import (
	"context"
	"errors"
	"time"
)

const retryAttempts = 3

// RetryableError marks a transient failure, such as a refused dial to redis,
// that is worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn up to three times, waiting one second and then
// two seconds between attempts. Errors not marked with Retryable are
// returned at once.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retry(ctx, time.Second, fn)
}

func retry(ctx context.Context, delay time.Duration, fn func() error) error {
	err := fn()
	for attempt := 1; attempt < retryAttempts && IsRetryable(err); attempt++ {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
