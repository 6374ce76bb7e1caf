package culture

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Repository persists cache records to sqlite so a restarted engine does
// not re-fetch every cuisine.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository on an existing database connection.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

type summaryData struct {
	Staples    []string `json:"staples"`
	Techniques []string `json:"techniques"`
}

// Upsert fully replaces the persisted record for the record's cuisine.
func (r *Repository) Upsert(ctx context.Context, rec *CacheRecord) error {
	mealsJSON, err := json.Marshal(rec.Pool.Candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal pool candidates: %w", err)
	}
	summaryJSON, err := json.Marshal(summaryData{Staples: rec.Pool.Staples, Techniques: rec.Pool.Techniques})
	if err != nil {
		return fmt.Errorf("failed to marshal pool summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cultural_cache
			(cuisine_name, meals_data, summary_data, data_version, quality_score, access_count, last_accessed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cuisine_name) DO UPDATE SET
			meals_data = excluded.meals_data,
			summary_data = excluded.summary_data,
			data_version = excluded.data_version,
			quality_score = excluded.quality_score,
			access_count = excluded.access_count,
			last_accessed = excluded.last_accessed,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		rec.Cuisine, string(mealsJSON), string(summaryJSON), rec.DataVersion,
		rec.QualityScore, rec.AccessCount, rec.LastAccessed, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cache record for %q: %w", rec.Cuisine, err)
	}
	return nil
}

// Touch updates only the access bookkeeping for a cuisine.
func (r *Repository) Touch(ctx context.Context, cuisine string, accessCount int, lastAccessed time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cultural_cache SET access_count = ?, last_accessed = ? WHERE cuisine_name = ?`,
		accessCount, lastAccessed, cuisine,
	)
	if err != nil {
		return fmt.Errorf("failed to touch cache record for %q: %w", cuisine, err)
	}
	return nil
}

// LoadAll reads every persisted record.
func (r *Repository) LoadAll(ctx context.Context) ([]CacheRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cuisine_name, meals_data, summary_data, data_version, quality_score, access_count, last_accessed, created_at, updated_at
		FROM cultural_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache records: %w", err)
	}
	defer rows.Close()

	var records []CacheRecord
	for rows.Next() {
		var rec CacheRecord
		var mealsJSON, summaryJSON string
		if err := rows.Scan(&rec.Cuisine, &mealsJSON, &summaryJSON, &rec.DataVersion,
			&rec.QualityScore, &rec.AccessCount, &rec.LastAccessed, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cache record: %w", err)
		}

		rec.Pool.Cuisine = rec.Cuisine
		if err := json.Unmarshal([]byte(mealsJSON), &rec.Pool.Candidates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pool for %q: %w", rec.Cuisine, err)
		}
		var summary summaryData
		if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary for %q: %w", rec.Cuisine, err)
		}
		rec.Pool.Staples = summary.Staples
		rec.Pool.Techniques = summary.Techniques
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the persisted record for a cuisine.
func (r *Repository) Delete(ctx context.Context, cuisine string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cultural_cache WHERE cuisine_name = ?`, cuisine); err != nil {
		return fmt.Errorf("failed to delete cache record for %q: %w", cuisine, err)
	}
	return nil
}
