package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type sessionParserStub struct {
	claims *models.PlannerClaims
	err    error
	raw    string
}

func (s *sessionParserStub) Parse(raw string) (*models.PlannerClaims, error) {
	s.raw = raw
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newSessionRouter(parser *sessionParserStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Session(parser), func(c *gin.Context) {
		c.String(http.StatusOK, PlannerID(c))
	})
	return r
}

func TestSessionMiddlewareAcceptsBearerToken(t *testing.T) {
	parser := &sessionParserStub{claims: &models.PlannerClaims{PlannerID: "planner-1"}}
	r := newSessionRouter(parser)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "some-token", parser.raw)
	assert.Equal(t, "planner-1", w.Body.String())
}

func TestSessionMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newSessionRouter(&sessionParserStub{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareRejectsInvalidToken(t *testing.T) {
	parser := &sessionParserStub{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session token")}
	r := newSessionRouter(parser)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlannerIDMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", PlannerID(c))
}
