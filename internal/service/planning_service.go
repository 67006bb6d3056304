package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type labCatalogSearcher interface {
	SearchCourses(ctx context.Context, nameInput string) ([]models.Course, error)
}

type scheduleSolver interface {
	Solve(ctx context.Context, candidates [][]models.Section) ([][]models.Section, error)
}

type stateStore interface {
	Load(ctx context.Context, plannerID string) (*models.PlanningState, error)
	Save(ctx context.Context, plannerID string, state *models.PlanningState) error
	Delete(ctx context.Context, plannerID string) error
}

type eventMapper interface {
	MapSchedules(schedules [][]models.PlannedSection) ([][]models.CalendarEvent, error)
}

// CouplingState classifies a base/lab course pair.
type CouplingState string

const (
	CouplingUncoupled   CouplingState = "UNCOUPLED"
	CouplingMissingLab  CouplingState = "MISSING_LAB"
	CouplingMissingBase CouplingState = "MISSING_BASE"
	CouplingSatisfied   CouplingState = "SATISFIED"
)

// couplingStateFor evaluates the pair given catalog knowledge and the
// current selection.
func couplingStateFor(labExists, baseSelected, labSelected bool) CouplingState {
	if !labExists {
		return CouplingUncoupled
	}
	switch {
	case baseSelected && !labSelected:
		return CouplingMissingLab
	case labSelected && !baseSelected:
		return CouplingMissingBase
	default:
		return CouplingSatisfied
	}
}

// PlanningService owns the per-planner selection state, enforces the
// lecture/lab coupling rules before every solver fetch, and presents the
// schedule alternatives returned by the solver.
type PlanningService struct {
	catalog   labCatalogSearcher
	solver    scheduleSolver
	states    stateStore
	calendar  eventMapper
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*plannerSession
}

// plannerSession is the in-memory authority for one planner. fetchGen tags
// outstanding solver requests so a stale response never overwrites state
// produced for a newer selection.
type plannerSession struct {
	mu       sync.Mutex
	state    *models.PlanningState
	fetchGen uint64
}

// NewPlanningService constructs the service.
func NewPlanningService(catalog labCatalogSearcher, solver scheduleSolver, states stateStore, calendar eventMapper, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PlanningService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		catalog:   catalog,
		solver:    solver,
		states:    states,
		calendar:  calendar,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		sessions:  make(map[string]*plannerSession),
	}
}

// Toggle flips the section's membership in the course's selection, runs the
// requirement check, and on success refreshes the schedule alternatives. A
// requirement violation leaves the mutation in place and surfaces a blocking
// issue on the view instead of failing the request.
func (s *PlanningService) Toggle(ctx context.Context, plannerID string, req dto.ToggleSectionRequest) (*dto.PlanningView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}
	if req.Course.Code == "" || req.Section.NRC == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code and section nrc are required")
	}

	sess, _ := s.session(ctx, plannerID)

	sess.mu.Lock()
	action := sess.state.Toggle(req.Course, req.Section)
	s.persistLocked(ctx, plannerID, sess.state)
	baseSelected := sess.state.IsCourseSelected(models.BaseCode(req.Course.Code))
	labSelected := sess.state.IsCourseSelected(models.LabCode(req.Course.Code))
	sess.mu.Unlock()

	issue, warning := s.checkRequirement(ctx, req.Course.Code, action, baseSelected, labSelected)
	if issue != nil {
		if s.metrics != nil {
			s.metrics.RecordRequirementViolation()
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.state.LastIssue = issue
		s.persistLocked(ctx, plannerID, sess.state)
		return viewFromState(sess.state, action), nil
	}

	sess.mu.Lock()
	sess.state.LastIssue = nil
	sess.mu.Unlock()

	s.refreshSchedules(ctx, plannerID, sess)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	// A verification warning survives a successful refetch; a refetch
	// failure takes precedence.
	if warning != nil && sess.state.LastIssue == nil {
		sess.state.LastIssue = warning
	}
	return viewFromState(sess.state, action), nil
}

// View returns the current planning view, restoring persisted state on the
// planner's first contact.
func (s *PlanningService) View(ctx context.Context, plannerID string) (*dto.PlanningView, error) {
	sess, restored := s.session(ctx, plannerID)
	if restored {
		// A restored blob is never authoritative: refetch alternatives live.
		s.refreshSchedules(ctx, plannerID, sess)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewFromState(sess.state, ""), nil
}

// Advance moves the displayed schedule forward by one, clamped.
func (s *PlanningService) Advance(ctx context.Context, plannerID string) (*dto.PlanningView, error) {
	return s.navigate(ctx, plannerID, 1)
}

// Retreat moves the displayed schedule back by one, clamped.
func (s *PlanningService) Retreat(ctx context.Context, plannerID string) (*dto.PlanningView, error) {
	return s.navigate(ctx, plannerID, -1)
}

// Clear wipes the planner's state and its persisted blob.
func (s *PlanningService) Clear(ctx context.Context, plannerID string) (*dto.PlanningView, error) {
	sess, _ := s.session(ctx, plannerID)

	sess.mu.Lock()
	sess.fetchGen++ // invalidate any outstanding solver response
	sess.state = models.NewPlanningState()
	view := viewFromState(sess.state, "")
	sess.mu.Unlock()

	if err := s.states.Delete(ctx, plannerID); err != nil {
		s.logger.Warn("could not delete persisted planning state", zap.String("planner_id", plannerID), zap.Error(err))
	}
	return view, nil
}

// CurrentEvents exposes the displayed alternative's events for rendering and
// export.
func (s *PlanningService) CurrentEvents(ctx context.Context, plannerID string) ([]models.CalendarEvent, error) {
	sess, restored := s.session(ctx, plannerID)
	if restored {
		s.refreshSchedules(ctx, plannerID, sess)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	events := sess.state.CurrentEvents()
	out := make([]models.CalendarEvent, len(events))
	copy(out, events)
	return out, nil
}

// ExportState snapshots the planner's state as its persisted JSON form,
// returning the payload and the number of selected courses.
func (s *PlanningService) ExportState(ctx context.Context, plannerID string) ([]byte, int, error) {
	sess, _ := s.session(ctx, plannerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	payload, err := json.Marshal(sess.state)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not snapshot planning state")
	}
	return payload, len(sess.state.SelectedSectionsByCourse), nil
}

// ImportState replaces the planner's state with a stored snapshot, then
// refetches alternatives when the snapshot holds selections.
func (s *PlanningService) ImportState(ctx context.Context, plannerID string, payload []byte) (*dto.PlanningView, error) {
	state := models.NewPlanningState()
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "stored plan is malformed")
	}
	state.Normalize()

	sess, _ := s.session(ctx, plannerID)
	sess.mu.Lock()
	sess.fetchGen++
	sess.state = state
	s.persistLocked(ctx, plannerID, sess.state)
	hasSelections := state.HasSelections()
	sess.mu.Unlock()

	if hasSelections {
		s.refreshSchedules(ctx, plannerID, sess)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewFromState(sess.state, ""), nil
}

func (s *PlanningService) navigate(ctx context.Context, plannerID string, delta int) (*dto.PlanningView, error) {
	sess, restored := s.session(ctx, plannerID)
	if restored {
		s.refreshSchedules(ctx, plannerID, sess)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	idx := sess.state.SelectedScheduleIndex + delta
	max := len(sess.state.ScheduleOptions) - 1
	if idx > max {
		idx = max
	}
	if idx < 0 {
		idx = 0
	}
	if idx != sess.state.SelectedScheduleIndex {
		sess.state.SelectedScheduleIndex = idx
		s.persistLocked(ctx, plannerID, sess.state)
	}
	return viewFromState(sess.state, ""), nil
}

// session returns the planner's in-memory session, restoring the persisted
// blob on first contact. The second return reports whether a restore with
// live selections just happened, in which case the caller refetches.
func (s *PlanningService) session(ctx context.Context, plannerID string) (*plannerSession, bool) {
	s.mu.Lock()
	if sess, ok := s.sessions[plannerID]; ok {
		s.mu.Unlock()
		return sess, false
	}
	sess := &plannerSession{}
	sess.mu.Lock()
	s.sessions[plannerID] = sess
	s.mu.Unlock()

	state, err := s.states.Load(ctx, plannerID)
	switch {
	case err == nil:
	case errors.Is(err, appErrors.ErrStateNotFound):
		state = models.NewPlanningState()
	default:
		// A corrupt or unreachable blob resets to the default state and is
		// never surfaced to the planner.
		s.logger.Warn("planning state restore failed, starting empty", zap.String("planner_id", plannerID), zap.Error(err))
		state = models.NewPlanningState()
	}
	state.Normalize()
	sess.state = state
	restored := state.HasSelections()
	sess.mu.Unlock()
	return sess, restored
}

// checkRequirement applies the lecture/lab coupling rules. It returns a
// blocking issue when the toggle broke the coupling, or a non-blocking
// warning when catalog verification failed (fail-open).
func (s *PlanningService) checkRequirement(ctx context.Context, code string, action models.ToggleAction, baseSelected, labSelected bool) (issue, warning *models.ScheduleIssue) {
	base := models.BaseCode(code)
	lab := models.LabCode(code)
	// A plain removal that leaves other sections selected keeps the course
	// selected, so only a full course clear counts as removal here.
	removed := action == models.ToggleRemovedCourseCleared

	if models.IsLabCode(code) {
		if !removed && !baseSelected {
			return &models.ScheduleIssue{
				Code:    appErrors.ErrRequirementViolation.Code,
				Message: fmt.Sprintf("lab %s requires its base course %s to be selected", code, base),
			}, nil
		}
		if removed && baseSelected {
			return &models.ScheduleIssue{
				Code:    appErrors.ErrRequirementViolation.Code,
				Message: fmt.Sprintf("cannot remove lab %s while base course %s is still selected", code, base),
			}, nil
		}
		return nil, nil
	}

	courses, err := s.catalog.SearchCourses(ctx, lab)
	if err != nil {
		s.logger.Warn("lab requirement verification unavailable",
			zap.String("course", code), zap.Error(err))
		return nil, &models.ScheduleIssue{
			Code:    appErrors.ErrVerificationUnavailable.Code,
			Message: fmt.Sprintf("could not verify whether %s requires lab %s; scheduling anyway", code, lab),
		}
	}

	labExists := false
	for _, c := range courses {
		if c.Code == lab {
			labExists = true
			break
		}
	}

	switch couplingStateFor(labExists, baseSelected, labSelected) {
	case CouplingMissingLab:
		if !removed {
			return &models.ScheduleIssue{
				Code:    appErrors.ErrRequirementViolation.Code,
				Message: fmt.Sprintf("course %s has a mandatory lab, select a section of %s", code, lab),
			}, nil
		}
	case CouplingMissingBase:
		if removed {
			return &models.ScheduleIssue{
				Code:    appErrors.ErrRequirementViolation.Code,
				Message: fmt.Sprintf("cannot remove course %s while lab %s is still selected", code, lab),
			}, nil
		}
	}
	return nil, nil
}

// refreshSchedules asks the solver for alternatives matching the current
// selection and replaces the presented options on success. The solver call
// runs outside the session lock; the generation tag decides afterwards
// whether the response still applies.
func (s *PlanningService) refreshSchedules(ctx context.Context, plannerID string, sess *plannerSession) {
	sess.mu.Lock()
	if !sess.state.HasSelections() {
		// Nothing to solve for. Stale alternatives must not outlive the
		// selection that produced them.
		sess.fetchGen++
		sess.state.ScheduleOptions = nil
		sess.state.SelectedScheduleIndex = 0
		s.persistLocked(ctx, plannerID, sess.state)
		sess.mu.Unlock()
		return
	}
	sess.fetchGen++
	gen := sess.fetchGen
	candidates := sess.state.Candidates()
	order := sess.state.SelectedCourseCodes()
	meta := make(map[string]models.CourseMeta, len(sess.state.SelectedCoursesMeta))
	for code, m := range sess.state.SelectedCoursesMeta {
		meta[code] = m
	}
	sess.mu.Unlock()

	start := time.Now()
	schedules, err := s.solver.Solve(ctx, candidates)
	if s.metrics != nil {
		s.metrics.ObserveSolverCall(err == nil, time.Since(start))
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if gen != sess.fetchGen {
		s.logger.Debug("discarding stale solver response", zap.String("planner_id", plannerID), zap.Uint64("generation", gen))
		return
	}

	if err != nil {
		s.logger.Error("solver call failed", zap.String("planner_id", plannerID), zap.Error(err))
		sess.state.LastIssue = &models.ScheduleIssue{
			Code:    appErrors.ErrSolverFailure.Code,
			Message: "a critical error occurred while generating schedules, try again later",
		}
		s.persistLocked(ctx, plannerID, sess.state)
		return
	}

	planned, ok := annotateSchedules(schedules, order, meta)
	if !ok {
		// Empty and malformed responses both keep the last known-good view.
		sess.state.LastIssue = &models.ScheduleIssue{
			Code:    appErrors.ErrEmptySolution.Code,
			Message: "no compatible schedules found for the selected sections, pick different sections or check for conflicts",
		}
		s.persistLocked(ctx, plannerID, sess.state)
		return
	}

	options, mapErr := s.calendar.MapSchedules(planned)
	if mapErr != nil {
		s.logger.Error("mapping solver schedules failed", zap.String("planner_id", plannerID), zap.Error(mapErr))
		sess.state.LastIssue = &models.ScheduleIssue{
			Code:    appErrors.ErrSolverFailure.Code,
			Message: "the solver returned an invalid schedule, try again later",
		}
		s.persistLocked(ctx, plannerID, sess.state)
		return
	}

	sess.state.ScheduleOptions = options
	sess.state.SelectedScheduleIndex = 0
	sess.state.LastIssue = nil
	s.persistLocked(ctx, plannerID, sess.state)
}

// annotateSchedules attaches cached course metadata to each alternative's
// sections by positional correspondence with the selected course codes.
func annotateSchedules(schedules [][]models.Section, order []string, meta map[string]models.CourseMeta) ([][]models.PlannedSection, bool) {
	if len(schedules) == 0 {
		return nil, false
	}
	planned := make([][]models.PlannedSection, 0, len(schedules))
	for _, schedule := range schedules {
		if len(schedule) != len(order) {
			return nil, false
		}
		alternative := make([]models.PlannedSection, 0, len(schedule))
		for i, section := range schedule {
			m := meta[order[i]]
			alternative = append(alternative, models.PlannedSection{
				Section:       section,
				CourseCode:    order[i],
				CourseTitle:   m.Title,
				CourseCredits: m.Credits,
			})
		}
		planned = append(planned, alternative)
	}
	return planned, true
}

// persistLocked writes the state to the blob store, logging instead of
// failing: persistence is best-effort and never raises to the planner.
func (s *PlanningService) persistLocked(ctx context.Context, plannerID string, state *models.PlanningState) {
	err := s.states.Save(ctx, plannerID, state)
	if s.metrics != nil {
		s.metrics.RecordStateWrite(err == nil)
	}
	if err != nil {
		s.logger.Warn("could not persist planning state", zap.String("planner_id", plannerID), zap.Error(err))
	}
}

func viewFromState(state *models.PlanningState, action models.ToggleAction) *dto.PlanningView {
	selections := make(map[string][]models.Section, len(state.SelectedSectionsByCourse))
	for code, sections := range state.SelectedSectionsByCourse {
		copied := make([]models.Section, len(sections))
		copy(copied, sections)
		selections[code] = copied
	}
	metas := make(map[string]models.CourseMeta, len(state.SelectedCoursesMeta))
	for code, m := range state.SelectedCoursesMeta {
		metas[code] = m
	}

	events := state.CurrentEvents()
	copiedEvents := make([]models.CalendarEvent, len(events))
	copy(copiedEvents, events)

	var issue *models.ScheduleIssue
	if state.LastIssue != nil {
		cloned := *state.LastIssue
		issue = &cloned
	}

	return &dto.PlanningView{
		SelectedSectionsByCourse: selections,
		SelectedCoursesMeta:      metas,
		CourseOrder:              state.SelectedCourseCodes(),
		ScheduleCount:            len(state.ScheduleOptions),
		SelectedScheduleIndex:    state.SelectedScheduleIndex,
		Events:                   copiedEvents,
		ScheduleIssue:            issue,
		LastAction:               action,
	}
}
