package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
)

// PlanRepository provides persistence for saved plan snapshots.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a new saved plan, assigning an ID when absent.
func (r *PlanRepository) Create(ctx context.Context, plan *models.SavedPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	const query = `
INSERT INTO saved_plans (id, planner_id, name, course_count, state)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

	if err := r.db.QueryRowxContext(ctx, query,
		plan.ID, plan.PlannerID, plan.Name, plan.CourseCount, plan.State,
	).Scan(&plan.CreatedAt); err != nil {
		return fmt.Errorf("insert saved plan: %w", err)
	}
	return nil
}

// ListByPlanner returns the planner's saved plans, newest first.
func (r *PlanRepository) ListByPlanner(ctx context.Context, plannerID string) ([]dto.PlanSummary, error) {
	const query = `
SELECT id, name, course_count, created_at
FROM saved_plans
WHERE planner_id = $1
ORDER BY created_at DESC`

	var items []dto.PlanSummary
	if err := r.db.SelectContext(ctx, &items, query, plannerID); err != nil {
		return nil, fmt.Errorf("list saved plans: %w", err)
	}
	return items, nil
}

// FindByID fetches one saved plan scoped to its owner.
func (r *PlanRepository) FindByID(ctx context.Context, plannerID, id string) (*models.SavedPlan, error) {
	const query = `
SELECT id, planner_id, name, course_count, state, created_at
FROM saved_plans
WHERE id = $1 AND planner_id = $2`

	var plan models.SavedPlan
	if err := r.db.GetContext(ctx, &plan, query, id, plannerID); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Delete removes a saved plan scoped to its owner.
func (r *PlanRepository) Delete(ctx context.Context, plannerID, id string) error {
	const query = `DELETE FROM saved_plans WHERE id = $1 AND planner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, plannerID)
	if err != nil {
		return fmt.Errorf("delete saved plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved plan rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
