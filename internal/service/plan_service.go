package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type planRepository interface {
	Create(ctx context.Context, plan *models.SavedPlan) error
	ListByPlanner(ctx context.Context, plannerID string) ([]dto.PlanSummary, error)
	FindByID(ctx context.Context, plannerID, id string) (*models.SavedPlan, error)
	Delete(ctx context.Context, plannerID, id string) error
}

type planningStateExchanger interface {
	ExportState(ctx context.Context, plannerID string) ([]byte, int, error)
	ImportState(ctx context.Context, plannerID string, payload []byte) (*dto.PlanningView, error)
}

// PlanService manages named snapshots of planning states.
type PlanService struct {
	repo      planRepository
	planning  planningStateExchanger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlanService constructs the service.
func NewPlanService(repo planRepository, planning planningStateExchanger, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{repo: repo, planning: planning, validator: validate, logger: logger}
}

// Save snapshots the planner's current state under the given name.
func (s *PlanService) Save(ctx context.Context, plannerID string, req dto.SavePlanRequest) (*models.SavedPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}

	payload, courseCount, err := s.planning.ExportState(ctx, plannerID)
	if err != nil {
		return nil, err
	}

	plan := &models.SavedPlan{
		PlannerID:   plannerID,
		Name:        req.Name,
		CourseCount: courseCount,
		State:       payload,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not save plan")
	}
	return plan, nil
}

// List returns the planner's saved plans.
func (s *PlanService) List(ctx context.Context, plannerID string) ([]dto.PlanSummary, error) {
	items, err := s.repo.ListByPlanner(ctx, plannerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not list plans")
	}
	if items == nil {
		items = []dto.PlanSummary{}
	}
	return items, nil
}

// Load replaces the planner's live state with a saved snapshot. Loading
// behaves like a restore: the schedule index is re-validated and the
// alternatives are refetched.
func (s *PlanService) Load(ctx context.Context, plannerID, id string) (*dto.PlanningView, error) {
	plan, err := s.repo.FindByID(ctx, plannerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not load plan")
	}
	return s.planning.ImportState(ctx, plannerID, plan.State)
}

// Delete removes a saved plan.
func (s *PlanService) Delete(ctx context.Context, plannerID, id string) error {
	if err := s.repo.Delete(ctx, plannerID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not delete plan")
	}
	return nil
}
