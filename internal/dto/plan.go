package dto

import "time"

// SavePlanRequest names a snapshot of the current planning state.
type SavePlanRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// PlanSummary lists a saved plan without its state payload.
type PlanSummary struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CourseCount int       `json:"courseCount" db:"course_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SessionResponse carries a freshly issued planner token.
type SessionResponse struct {
	Token     string    `json:"token"`
	PlannerID string    `json:"plannerId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
