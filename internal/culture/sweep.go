package culture

import (
	"context"
	"time"
)

// Sweep evicts every record older than TTL and returns the eviction count.
// Safe to run concurrently with request handling; eviction is map deletion
// under the store lock, so no record is ever partially overwritten.
func (s *Store) Sweep(ctx context.Context) int {
	now := s.clock.Now()
	var evicted []string

	s.mu.Lock()
	for cuisine, rec := range s.records {
		if rec.Age(now) >= s.ttl {
			delete(s.records, cuisine)
			evicted = append(evicted, cuisine)
		}
	}
	s.stats.Evictions += int64(len(evicted))
	s.stats.LastCleanup = now
	s.mu.Unlock()

	for _, cuisine := range evicted {
		if s.repo != nil {
			if err := s.repo.Delete(ctx, cuisine); err != nil {
				s.log.Warn().Str("cuisine", cuisine).Err(err).Msg("failed to delete persisted record")
			}
		}
	}
	if len(evicted) > 0 {
		s.log.Info().Int("evicted", len(evicted)).Msg("cache sweep completed")
	}
	return len(evicted)
}

// StartSweeper runs the maintenance sweep on a fixed interval until the
// context is cancelled.
func (s *Store) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepGap)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}
