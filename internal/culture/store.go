package culture

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"meal-plan-engine/internal/knowledge"
	"meal-plan-engine/internal/retry"
	"meal-plan-engine/internal/scoring"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultBatchSize  = 5
	defaultBatchDelay = 2 * time.Second
	defaultRateLimit  = 10
	defaultRateWindow = time.Minute
	defaultSweepEvery = 6 * time.Hour
)

// Stats is a snapshot of the store's counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Errors      int64
	Evictions   int64
	Refreshes   int64
	Records     int
	LastCleanup time.Time
}

// Store is the cultural cache: an explicit instance owning its record map
// and counters, constructed with an injected clock and fetch collaborator.
type Store struct {
	fetcher  knowledge.Fetcher
	scorer   *scoring.Scorer
	repo     *Repository
	clock    Clock
	log      zerolog.Logger
	ttl      time.Duration
	policy   retry.Policy
	batchSz  int
	batchGap time.Duration
	sweepGap time.Duration
	limiter  *slidingLimiter
	sleep    func(context.Context, time.Duration) error

	mu      sync.Mutex
	records map[string]*CacheRecord
	stats   Stats
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock injects the time source.
func WithClock(c Clock) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRepository enables sqlite persistence of cache records.
func WithRepository(r *Repository) StoreOption {
	return func(s *Store) { s.repo = r }
}

// WithTTL overrides the record time-to-live (default 24h).
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRateLimit overrides the sliding-window fetch budget (default 10/min).
func WithRateLimit(limit int, window time.Duration) StoreOption {
	return func(s *Store) {
		s.limiter = newSlidingLimiter(limit, window, s.clock)
	}
}

// WithRetryPolicy overrides the fetch retry policy (default 3 attempts,
// 500ms base, exponential).
func WithRetryPolicy(p retry.Policy) StoreOption {
	return func(s *Store) { s.policy = p }
}

// WithBatch overrides warm-up batching (default 5 cuisines per batch, 2s
// between batches).
func WithBatch(size int, gap time.Duration) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.batchSz = size
		}
		if gap >= 0 {
			s.batchGap = gap
		}
	}
}

// WithSweepInterval overrides the maintenance sweep cadence (default 6h).
func WithSweepInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.sweepGap = d
		}
	}
}

// WithSleeper overrides how waits are performed (rate-limit gates, retry
// backoff, inter-batch delays). Tests inject a no-op recorder.
func WithSleeper(sleep func(context.Context, time.Duration) error) StoreOption {
	return func(s *Store) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore creates a Store around the given fetch collaborator.
func NewStore(fetcher knowledge.Fetcher, scorer *scoring.Scorer, opts ...StoreOption) *Store {
	s := &Store{
		fetcher:  fetcher,
		scorer:   scorer,
		clock:    systemClock{},
		log:      zerolog.Nop(),
		ttl:      defaultTTL,
		policy:   retry.DefaultPolicy(),
		batchSz:  defaultBatchSize,
		batchGap: defaultBatchDelay,
		sweepGap: defaultSweepEvery,
		records:  make(map[string]*CacheRecord),
	}
	s.sleep = func(ctx context.Context, d time.Duration) error {
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
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = newSlidingLimiter(defaultRateLimit, defaultRateWindow, s.clock)
	} else {
		// Rebind in case WithRateLimit ran before WithClock.
		s.limiter.clock = s.clock
	}
	s.stats.LastCleanup = s.clock.Now()
	return s
}

// Get returns the candidate pool for a cuisine. A record younger than TTL is
// served from memory; anything older (or a forced refresh, or a miss)
// triggers the retrying fetch pipeline first. On refresh failure an existing
// stale pool is returned together with the *FetchError so the caller can
// decide whether stale data is acceptable.
func (s *Store) Get(ctx context.Context, cuisine string, forceRefresh bool) (*Pool, error) {
	now := s.clock.Now()

	s.mu.Lock()
	rec, ok := s.records[cuisine]
	if ok && !forceRefresh && rec.Age(now) < s.ttl {
		rec.AccessCount++
		rec.LastAccessed = now
		s.stats.Hits++
		pool := rec.Pool
		s.mu.Unlock()
		s.touchPersisted(ctx, cuisine, rec.AccessCount, now)
		return &pool, nil
	}
	s.stats.Misses++
	s.mu.Unlock()

	pool, err := s.refresh(ctx, cuisine)
	if err != nil {
		s.mu.Lock()
		s.stats.Errors++
		stale, hasStale := s.records[cuisine]
		if hasStale {
			stalePool := stale.Pool
			s.mu.Unlock()
			s.log.Warn().Str("cuisine", cuisine).Err(err).Msg("refresh failed, stale pool available")
			return &stalePool, err
		}
		s.mu.Unlock()
		return nil, err
	}
	return pool, nil
}

// refresh fetches, scores and upserts one cuisine. Every attempt is gated on
// the rate-limit window before it is issued.
func (s *Store) refresh(ctx context.Context, cuisine string) (*Pool, error) {
	var data *knowledge.CuisineData
	err := retry.Do(ctx, s.policy, func(ctx context.Context) error {
		if err := s.acquireSlot(ctx); err != nil {
			return retry.Permanent(err)
		}
		fetched, err := s.fetcher.Fetch(ctx, cuisine)
		if err != nil {
			return err
		}
		data = fetched
		return nil
	}, retry.WithSleeper(s.sleep))
	if err != nil {
		return nil, &FetchError{Cuisine: cuisine, Attempts: s.policy.MaxAttempts, Err: err}
	}

	pool := buildPool(cuisine, data, s.scorer)
	quality := qualityScore(data)
	now := s.clock.Now()

	s.mu.Lock()
	version := 1
	created := now
	access := 0
	if old, ok := s.records[cuisine]; ok {
		version = old.DataVersion + 1
		access = old.AccessCount
		created = old.CreatedAt
	}
	rec := &CacheRecord{
		Cuisine:      cuisine,
		Pool:         pool,
		DataVersion:  version,
		QualityScore: quality,
		AccessCount:  access,
		LastAccessed: now,
		CreatedAt:    created,
		UpdatedAt:    now,
	}
	s.records[cuisine] = rec
	s.stats.Refreshes++
	snapshot := *rec
	s.mu.Unlock()

	s.log.Debug().
		Str("cuisine", cuisine).
		Int("version", version).
		Int("pool_size", len(pool.Candidates)).
		Float64("quality", quality).
		Msg("cache record refreshed")

	if s.repo != nil {
		if err := s.repo.Upsert(ctx, &snapshot); err != nil {
			s.log.Warn().Str("cuisine", cuisine).Err(err).Msg("failed to persist cache record")
		}
	}
	return &pool, nil
}

// acquireSlot blocks until the sliding window has room, then records the
// attempt. The recorded timestamp counts the attempt as issued.
func (s *Store) acquireSlot(ctx context.Context) error {
	for {
		if s.limiter.Allow() {
			return nil
		}
		wait := s.limiter.NextFree()
		if wait <= 0 {
			continue
		}
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (s *Store) touchPersisted(ctx context.Context, cuisine string, accessCount int, at time.Time) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Touch(ctx, cuisine, accessCount, at); err != nil {
		s.log.Warn().Str("cuisine", cuisine).Err(err).Msg("failed to update persisted access fields")
	}
}

// Hydrate loads persisted records into memory. Called once at startup;
// records past TTL are loaded too and refreshed lazily on first Get.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range recs {
		rec := recs[i]
		s.records[rec.Cuisine] = &rec
	}
	s.log.Info().Int("records", len(recs)).Msg("cache hydrated from database")
	return nil
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.stats
	snap.Records = len(s.records)
	return snap
}
