package planner

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// StoredPlan is a persisted plan with its originating request.
type StoredPlan struct {
	ID        string
	CreatedAt time.Time
	Request   Request
	Plan      Plan
}

// PlanRepository is a database-backed repository for generated plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a generated plan and returns its id.
func (r *PlanRepository) Save(ctx context.Context, req *Request, plan *Plan) (string, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan request: %w", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (id, created_at, request_data, plan_data)
		VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC(), string(reqJSON), string(planJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save plan: %w", err)
	}
	return id, nil
}

// Get loads one stored plan by id.
func (r *PlanRepository) Get(ctx context.Context, id string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, request_data, plan_data FROM meal_plans WHERE id = ?`, id)

	var sp StoredPlan
	var reqJSON, planJSON string
	if err := row.Scan(&sp.ID, &sp.CreatedAt, &reqJSON, &planJSON); err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(reqJSON), &sp.Request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan request %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(planJSON), &sp.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan %s: %w", id, err)
	}
	return &sp, nil
}

// ListRecent returns the most recent plans, newest first.
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, request_data, plan_data
		FROM meal_plans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var sp StoredPlan
		var reqJSON, planJSON string
		if err := rows.Scan(&sp.ID, &sp.CreatedAt, &reqJSON, &planJSON); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(reqJSON), &sp.Request); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan request %s: %w", sp.ID, err)
		}
		if err := json.Unmarshal([]byte(planJSON), &sp.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan %s: %w", sp.ID, err)
		}
		plans = append(plans, sp)
	}
	return plans, rows.Err()
}
