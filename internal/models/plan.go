package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// SavedPlan is a named snapshot of a planner's view state.
type SavedPlan struct {
	ID          string         `db:"id" json:"id"`
	PlannerID   string         `db:"planner_id" json:"-"`
	Name        string         `db:"name" json:"name"`
	CourseCount int            `db:"course_count" json:"courseCount"`
	State       types.JSONText `db:"state" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}
