package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func recordingSleeper(slept *[]time.Duration) Option {
	return WithSleeper(func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	})
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := Do(context.Background(), DefaultPolicy(), func(context.Context) error {
		calls++
		return nil
	}, recordingSleeper(&slept))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if len(slept) != 0 {
		t.Errorf("Expected no sleeps, got %v", slept)
	}
}

func TestDoExponentialBackoff(t *testing.T) {
	var slept []time.Duration
	policy := Policy{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond, Multiplier: 2, MaxDelay: time.Minute}

	calls := 0
	err := Do(context.Background(), policy, func(context.Context) error {
		calls++
		return fmt.Errorf("boom %d", calls)
	}, recordingSleeper(&slept))

	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("Expected %d sleeps, got %v", len(want), slept)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("Sleep %d: expected %v, got %v", i, want[i], slept[i])
		}
	}
}

func TestDoMaxDelayCap(t *testing.T) {
	policy := Policy{MaxAttempts: 5, BaseDelay: time.Second, Multiplier: 10, MaxDelay: 2 * time.Second}
	if got := policy.Delay(4); got != 2*time.Second {
		t.Errorf("Expected delay capped at 2s, got %v", got)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	var slept []time.Duration
	calls := 0
	base := errors.New("bad request")
	err := Do(context.Background(), DefaultPolicy(), func(context.Context) error {
		calls++
		return Permanent(base)
	}, recordingSleeper(&slept))

	if calls != 1 {
		t.Errorf("Expected 1 attempt for permanent error, got %d", calls)
	}
	if !errors.Is(err, base) {
		t.Errorf("Expected unwrapped permanent error, got %v", err)
	}
	if len(slept) != 0 {
		t.Errorf("Expected no sleeps for permanent error, got %v", slept)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 5, BaseDelay: time.Millisecond, Multiplier: 2}, func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 attempt before cancellation stopped retries, got %d", calls)
	}
}

func TestIsPermanent(t *testing.T) {
	if IsPermanent(errors.New("plain")) {
		t.Error("Plain error should not be permanent")
	}
	wrapped := fmt.Errorf("context: %w", Permanent(errors.New("inner")))
	if !IsPermanent(wrapped) {
		t.Error("Wrapped permanent error should still be permanent")
	}
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
