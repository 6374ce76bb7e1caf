// Package metrics persists per-run execution metrics so cache behavior and
// synthesis fallbacks can be inspected after the fact.
package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ExecutionMetric records metadata for a single engine operation.
type ExecutionMetric struct {
	Operation        string
	DurationMS       int64
	CacheHits        int
	CacheMisses      int
	SynthesizedMeals int
	FallbackMeals    int
	Succeeded        bool
	RecordedAt       time.Time
}

// DailyUsage aggregates metrics for one calendar day.
type DailyUsage struct {
	Day              string
	Runs             int
	CacheHits        int
	CacheMisses      int
	SynthesizedMeals int
	FallbackMeals    int
	Failures         int
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	ts := m.RecordedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	succeeded := 0
	if m.Succeeded {
		succeeded = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO execution_metrics
			(recorded_at, operation, duration_ms, cache_hits, cache_misses, synthesized_meals, fallback_meals, succeeded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, m.Operation, m.DurationMS, m.CacheHits, m.CacheMisses, m.SynthesizedMeals, m.FallbackMeals, succeeded,
	)
	if err != nil {
		return fmt.Errorf("failed to record execution metric: %w", err)
	}
	return nil
}

// GetDailyUsage aggregates metrics per day for the last `days` days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(recorded_at) AS day,
			COUNT(*),
			SUM(cache_hits),
			SUM(cache_misses),
			SUM(synthesized_meals),
			SUM(fallback_meals),
			SUM(CASE WHEN succeeded = 0 THEN 1 ELSE 0 END)
		FROM execution_metrics
		WHERE recorded_at >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var usage []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Day, &u.Runs, &u.CacheHits, &u.CacheMisses,
			&u.SynthesizedMeals, &u.FallbackMeals, &u.Failures); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// Cleanup drops metrics older than the retention window.
func (s *Store) Cleanup(ctx context.Context, retainDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM execution_metrics WHERE recorded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return res.RowsAffected()
}
