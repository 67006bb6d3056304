package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type planRepoMock struct {
	plans    map[string]*models.SavedPlan
	listResp []dto.PlanSummary
	created  *models.SavedPlan
}

func (m *planRepoMock) Create(ctx context.Context, plan *models.SavedPlan) error {
	if m.plans == nil {
		m.plans = make(map[string]*models.SavedPlan)
	}
	if plan.ID == "" {
		plan.ID = "generated"
	}
	m.plans[plan.ID] = plan
	m.created = plan
	return nil
}

func (m *planRepoMock) ListByPlanner(ctx context.Context, plannerID string) ([]dto.PlanSummary, error) {
	return m.listResp, nil
}

func (m *planRepoMock) FindByID(ctx context.Context, plannerID, id string) (*models.SavedPlan, error) {
	plan, ok := m.plans[id]
	if !ok || plan.PlannerID != plannerID {
		return nil, sql.ErrNoRows
	}
	return plan, nil
}

func (m *planRepoMock) Delete(ctx context.Context, plannerID, id string) error {
	plan, ok := m.plans[id]
	if !ok || plan.PlannerID != plannerID {
		return sql.ErrNoRows
	}
	delete(m.plans, id)
	return nil
}

type exchangerMock struct {
	payload    []byte
	count      int
	imported   []byte
	importView *dto.PlanningView
}

func (m *exchangerMock) ExportState(ctx context.Context, plannerID string) ([]byte, int, error) {
	return m.payload, m.count, nil
}

func (m *exchangerMock) ImportState(ctx context.Context, plannerID string, payload []byte) (*dto.PlanningView, error) {
	m.imported = payload
	return m.importView, nil
}

func TestPlanSave(t *testing.T) {
	state, err := json.Marshal(models.NewPlanningState())
	require.NoError(t, err)

	repo := &planRepoMock{}
	exchanger := &exchangerMock{payload: state, count: 3}
	svc := NewPlanService(repo, exchanger, nil, nil)

	plan, err := svc.Save(context.Background(), "p1", dto.SavePlanRequest{Name: "Semestre ideal"})
	require.NoError(t, err)

	assert.Equal(t, "Semestre ideal", plan.Name)
	assert.Equal(t, "p1", plan.PlannerID)
	assert.Equal(t, 3, plan.CourseCount)
	assert.JSONEq(t, string(state), string(plan.State))
	require.NotNil(t, repo.created)
}

func TestPlanSaveRequiresName(t *testing.T) {
	svc := NewPlanService(&planRepoMock{}, &exchangerMock{}, nil, nil)

	_, err := svc.Save(context.Background(), "p1", dto.SavePlanRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPlanListNeverReturnsNil(t *testing.T) {
	svc := NewPlanService(&planRepoMock{}, &exchangerMock{}, nil, nil)

	items, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPlanLoadImportsSnapshot(t *testing.T) {
	payload := []byte(`{"selectedSectionsByCourse":{}}`)
	repo := &planRepoMock{plans: map[string]*models.SavedPlan{
		"plan-1": {ID: "plan-1", PlannerID: "p1", State: payload},
	}}
	exchanger := &exchangerMock{importView: &dto.PlanningView{ScheduleCount: 2}}
	svc := NewPlanService(repo, exchanger, nil, nil)

	view, err := svc.Load(context.Background(), "p1", "plan-1")
	require.NoError(t, err)

	assert.Equal(t, 2, view.ScheduleCount)
	assert.Equal(t, payload, exchanger.imported)
}

func TestPlanLoadScopedToOwner(t *testing.T) {
	repo := &planRepoMock{plans: map[string]*models.SavedPlan{
		"plan-1": {ID: "plan-1", PlannerID: "someone-else"},
	}}
	svc := NewPlanService(repo, &exchangerMock{}, nil, nil)

	_, err := svc.Load(context.Background(), "p1", "plan-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPlanDeleteMissing(t *testing.T) {
	svc := NewPlanService(&planRepoMock{}, &exchangerMock{}, nil, nil)

	err := svc.Delete(context.Background(), "p1", "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
