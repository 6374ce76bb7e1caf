package culture

import (
	"testing"
	"time"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	l := newSlidingLimiter(3, time.Minute, clock)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow() {
		t.Fatal("fourth call within the window should be rejected")
	}
}

func TestLimiterWindowSlides(t *testing.T) {
	clock := newFakeClock()
	l := newSlidingLimiter(2, time.Minute, clock)

	l.Allow()
	clock.Advance(30 * time.Second)
	l.Allow()

	if l.Allow() {
		t.Fatal("window is full, call should be rejected")
	}

	// 31s later the first stamp has left the window, the second has not.
	clock.Advance(31 * time.Second)
	if !l.Allow() {
		t.Fatal("expected room after the oldest stamp expired")
	}
	if l.Allow() {
		t.Fatal("window should be full again")
	}
}

func TestLimiterNextFree(t *testing.T) {
	clock := newFakeClock()
	l := newSlidingLimiter(1, time.Minute, clock)

	if got := l.NextFree(); got != 0 {
		t.Fatalf("empty window should be free now, got %v", got)
	}
	l.Allow()
	if got := l.NextFree(); got != time.Minute {
		t.Fatalf("expected full window wait of 1m, got %v", got)
	}
	clock.Advance(40 * time.Second)
	if got := l.NextFree(); got != 20*time.Second {
		t.Fatalf("expected 20s remaining, got %v", got)
	}
	if !l.Saturated() {
		t.Fatal("window should report saturated")
	}
	clock.Advance(21 * time.Second)
	if l.Saturated() {
		t.Fatal("window should have room again")
	}
}

func TestLimiterRejectionDoesNotConsume(t *testing.T) {
	clock := newFakeClock()
	l := newSlidingLimiter(1, time.Minute, clock)

	l.Allow()
	for i := 0; i < 5; i++ {
		l.Allow() // rejected, must not extend the window
	}
	clock.Advance(61 * time.Second)
	if !l.Allow() {
		t.Fatal("rejected calls must not count against the window")
	}
}
