package culture

import (
	"sync"
	"time"
)

// slidingLimiter enforces a sliding-window rate limit by pruning a list of
// issue timestamps. Token buckets would allow bursts above the window
// contract, so the window is tracked explicitly.
type slidingLimiter struct {
	mu     sync.Mutex
	clock  Clock
	window time.Duration
	limit  int
	stamps []time.Time
}

func newSlidingLimiter(limit int, window time.Duration, clock Clock) *slidingLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &slidingLimiter{clock: clock, window: window, limit: limit}
}

// prune drops timestamps that have left the window. Caller holds the lock.
func (l *slidingLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	keep := l.stamps[:0]
	for _, t := range l.stamps {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}
	l.stamps = keep
}

// Allow records one issued call if the window has room, returning false
// without recording otherwise.
func (l *slidingLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)
	if len(l.stamps) >= l.limit {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// NextFree reports how long until the window has room for another call.
// Zero means a call may be issued immediately.
func (l *slidingLimiter) NextFree() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)
	if len(l.stamps) < l.limit {
		return 0
	}
	return l.stamps[0].Add(l.window).Sub(now)
}

// Saturated reports whether the window is currently full.
func (l *slidingLimiter) Saturated() bool {
	return l.NextFree() > 0
}
