package models

import "github.com/golang-jwt/jwt/v5"

// PlannerClaims identifies an anonymous planner session. The planner ID is
// the key under which the planning state is stored.
type PlannerClaims struct {
	PlannerID string `json:"plannerId"`
	jwt.RegisteredClaims
}
