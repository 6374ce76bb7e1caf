// Package app wires the engine's components together and exposes the
// operations the CLI runs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"meal-plan-engine/internal/adapt"
	"meal-plan-engine/internal/config"
	"meal-plan-engine/internal/culture"
	"meal-plan-engine/internal/database"
	"meal-plan-engine/internal/hero"
	"meal-plan-engine/internal/knowledge"
	"meal-plan-engine/internal/metrics"
	"meal-plan-engine/internal/planner"
	"meal-plan-engine/internal/ranking"
	"meal-plan-engine/internal/retry"
	"meal-plan-engine/internal/scoring"
	"meal-plan-engine/internal/synth"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	db           *database.DB
	cacheStore   *culture.Store
	allocator    *planner.Allocator
	planRepo     *planner.PlanRepository
	metricsStore *metrics.Store

	textGen synth.TextGenerator
}

// New builds a fully wired App from configuration.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	scorer := scoring.New()
	adapter := adapt.New()

	fetcher := knowledge.NewClient(knowledge.Config{
		BaseURL:        cfg.Knowledge.BaseURL,
		APIKey:         cfg.Knowledge.APIKey,
		TimeoutSeconds: cfg.Knowledge.TimeoutSeconds,
	})

	cacheStore := culture.NewStore(fetcher, scorer,
		culture.WithRepository(culture.NewRepository(db.SQL)),
		culture.WithTTL(time.Duration(cfg.Cache.TTLHours)*time.Hour),
		culture.WithRateLimit(cfg.Cache.RateLimitPerMinute, time.Minute),
		culture.WithBatch(cfg.Cache.BatchSize, time.Duration(cfg.Cache.BatchDelaySeconds)*time.Second),
		culture.WithSweepInterval(time.Duration(cfg.Cache.SweepIntervalHours)*time.Hour),
		culture.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
			Multiplier:  2,
			MaxDelay:    30 * time.Second,
		}),
		culture.WithLogger(log),
	)
	if err := cacheStore.Hydrate(ctx); err != nil {
		log.Warn().Err(err).Msg("cache hydration failed, starting cold")
	}

	textGen, err := synth.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	engine := ranking.New(scorer, adapter)
	selector := planner.NewPoolSelector(cacheStore, engine,
		cfg.Ranking.RelevanceThreshold, cfg.Ranking.VarietyThreshold, log)
	allocator := planner.NewAllocator(
		selector,
		synth.NewSynthesizer(textGen),
		synth.NewFallbackLibrary(),
		adapter,
		hero.NewSelector(),
		planner.WithLogger(log),
	)

	return &App{
		cfg:          cfg,
		log:          log,
		db:           db,
		cacheStore:   cacheStore,
		allocator:    allocator,
		planRepo:     planner.NewPlanRepository(db.SQL),
		metricsStore: metrics.NewStore(db.SQL),
		textGen:      textGen,
	}, nil
}

// Close releases the App's resources.
func (a *App) Close() error {
	if closer, ok := a.textGen.(synth.Closer); ok {
		if err := closer.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close text generator")
		}
	}
	return a.db.Close()
}

// StartMaintenance launches the periodic cache sweep.
func (a *App) StartMaintenance(ctx context.Context) {
	a.cacheStore.StartSweeper(ctx)
}

// GeneratePlan builds a plan for the request, persists it and records
// execution metrics. The returned id identifies the stored plan.
func (a *App) GeneratePlan(ctx context.Context, req *planner.Request) (*planner.Plan, string, error) {
	start := time.Now()
	statsBefore := a.cacheStore.Stats()

	plan, err := a.allocator.Generate(ctx, req)

	statsAfter := a.cacheStore.Stats()
	metric := metrics.ExecutionMetric{
		Operation:   "generate_plan",
		DurationMS:  time.Since(start).Milliseconds(),
		CacheHits:   int(statsAfter.Hits - statsBefore.Hits),
		CacheMisses: int(statsAfter.Misses - statsBefore.Misses),
		Succeeded:   err == nil,
	}
	if plan != nil {
		metric.SynthesizedMeals = plan.Summary.SynthesizedMeals
		metric.FallbackMeals = plan.Summary.FallbackMeals
	}
	if recErr := a.metricsStore.Record(ctx, metric); recErr != nil {
		a.log.Warn().Err(recErr).Msg("failed to record plan metrics")
	}

	if err != nil {
		return nil, "", err
	}

	id, err := a.planRepo.Save(ctx, req, plan)
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to persist plan")
		return plan, "", nil
	}
	return plan, id, nil
}

// WarmCache pre-fetches cultural pools for the given cuisines.
func (a *App) WarmCache(ctx context.Context, cuisines []string) culture.BatchResult {
	start := time.Now()
	statsBefore := a.cacheStore.Stats()
	result := a.cacheStore.GetMany(ctx, cuisines)
	statsAfter := a.cacheStore.Stats()

	if err := a.metricsStore.Record(ctx, metrics.ExecutionMetric{
		Operation:   "warm_cache",
		DurationMS:  time.Since(start).Milliseconds(),
		CacheHits:   int(statsAfter.Hits - statsBefore.Hits),
		CacheMisses: int(statsAfter.Misses - statsBefore.Misses),
		Succeeded:   len(result.Failed) == 0,
	}); err != nil {
		a.log.Warn().Err(err).Msg("failed to record warm-up metrics")
	}
	return result
}

// CacheStats reports the cache store's counters alongside recent usage.
func (a *App) CacheStats(ctx context.Context, days int) (culture.Stats, []metrics.DailyUsage, error) {
	usage, err := a.metricsStore.GetDailyUsage(ctx, days)
	if err != nil {
		return culture.Stats{}, nil, err
	}
	return a.cacheStore.Stats(), usage, nil
}

// Maintain runs one maintenance pass: sweep expired cache records and trim
// old metrics.
func (a *App) Maintain(ctx context.Context) (evicted int, metricsDropped int64, err error) {
	evicted = a.cacheStore.Sweep(ctx)
	metricsDropped, err = a.metricsStore.Cleanup(ctx, a.cfg.MetricsRetentionDays)
	if err != nil {
		return evicted, 0, fmt.Errorf("metrics cleanup failed: %w", err)
	}
	return evicted, metricsDropped, nil
}

// RecentPlans lists the most recently stored plans.
func (a *App) RecentPlans(ctx context.Context, limit int) ([]planner.StoredPlan, error) {
	return a.planRepo.ListRecent(ctx, limit)
}
