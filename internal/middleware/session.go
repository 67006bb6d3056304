package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
	"github.com/cmolina12/senehorario/pkg/response"
)

// ContextPlannerKey holds the validated planner claims in the Gin context.
const ContextPlannerKey = "planner_claims"

type sessionParser interface {
	Parse(raw string) (*models.PlannerClaims, error)
}

// Session validates the bearer planner token and stores its claims.
func Session(sessions sessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing planner session token"))
			c.Abort()
			return
		}

		claims, err := sessions.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPlannerKey, claims)
		c.Next()
	}
}

// PlannerID returns the planner ID stored by Session, or empty.
func PlannerID(c *gin.Context) string {
	if v, exists := c.Get(ContextPlannerKey); exists {
		if claims, ok := v.(*models.PlannerClaims); ok {
			return claims.PlannerID
		}
	}
	return ""
}
