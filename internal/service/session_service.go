package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

// SessionService issues and validates anonymous planner tokens. A token
// carries the planner ID under which the planning state is stored, standing
// in for the browser's implicit per-device identity.
type SessionService struct {
	secret     []byte
	expiration time.Duration
	logger     *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(secret string, expiration time.Duration, logger *zap.Logger) *SessionService {
	if expiration <= 0 {
		expiration = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{secret: []byte(secret), expiration: expiration, logger: logger}
}

// Issue creates a new planner session token.
func (s *SessionService) Issue() (*dto.SessionResponse, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiration)
	claims := models.PlannerClaims{
		PlannerID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "planner",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not issue session token")
	}

	return &dto.SessionResponse{
		Token:     signed,
		PlannerID: claims.PlannerID,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates a token and returns its claims.
func (s *SessionService) Parse(raw string) (*models.PlannerClaims, error) {
	claims := &models.PlannerClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.PlannerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session token")
	}
	return claims, nil
}
