package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

const stateKeyPrefix = "planning:state:"

// StateRepository persists planning-state blobs in Redis. The store is
// best-effort: callers treat every failure as recoverable.
type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStateRepository constructs a state repository.
func NewStateRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepository{client: client, ttl: ttl, logger: logger}
}

// Load retrieves and unmarshals the stored state for the planner. A missing
// blob yields ErrStateNotFound.
func (r *StateRepository) Load(ctx context.Context, plannerID string) (*models.PlanningState, error) {
	if r.client == nil {
		return nil, appErrors.ErrStateNotFound
	}

	raw, err := r.client.Get(ctx, stateKeyPrefix+plannerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrStateNotFound
		}
		return nil, fmt.Errorf("redis get state for %s: %w", plannerID, err)
	}

	state := models.NewPlanningState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("unmarshal state for %s: %w", plannerID, err)
	}
	return state, nil
}

// Save marshals and stores the state under the planner key.
func (r *StateRepository) Save(ctx context.Context, plannerID string, state *models.PlanningState) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state for %s: %w", plannerID, err)
	}

	if err := r.client.Set(ctx, stateKeyPrefix+plannerID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set state for %s: %w", plannerID, err)
	}
	return nil
}

// Delete removes the stored state.
func (r *StateRepository) Delete(ctx context.Context, plannerID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, stateKeyPrefix+plannerID).Err(); err != nil {
		return fmt.Errorf("redis delete state for %s: %w", plannerID, err)
	}
	return nil
}
