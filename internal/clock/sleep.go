// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepFunc waits for a duration unless the context ends first.
type SleepFunc func(context.Context, time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry calls fn up to attempts times, sleeping delay between failures.
// It returns the last error from fn, or the context error if sleeping was interrupted.
func Retry(ctx context.Context, attempts int, delay time.Duration, sleep SleepFunc, fn func(attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}
	if sleep == nil {
		sleep = SleepWithContext
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}
