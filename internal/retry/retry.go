// Package retry provides the single retry/backoff wrapper used by every
// external call site in the engine.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy controls how many times an operation is attempted and how long to
// wait between attempts. Delay grows as BaseDelay × Multiplier^(attempt-1),
// capped at MaxDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultPolicy matches the engine-wide defaults: three attempts with
// exponential backoff starting at 500ms.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Multiplier:  2,
		MaxDelay:    10 * time.Second,
	}
}

// Delay returns the backoff before the given retry (attempt is 1-based; the
// delay applies after that attempt fails).
func (p Policy) Delay(attempt int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
	}
	delay := time.Duration(d)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable; Do fails fast on it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err (or anything it wraps) was marked with
// Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Option customizes a Do call.
type Option func(*runner)

// WithSleeper overrides how backoff sleeps are performed. Tests inject a
// recording sleeper to assert the delay sequence without waiting.
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(r *runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

type runner struct {
	sleep func(context.Context, time.Duration) error
}

func realSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn up to p.MaxAttempts times. It stops early on success, on a
// Permanent error, or when the context is done. The returned error is the
// last attempt's error wrapped with the attempt count.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, opts ...Option) error {
	r := &runner{sleep: realSleep}
	for _, opt := range opts {
		opt(r)
	}

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if IsPermanent(lastErr) {
			var pe *permanentError
			errors.As(lastErr, &pe)
			return pe.err
		}
		if attempt == attempts {
			break
		}
		if err := r.sleep(ctx, p.Delay(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
