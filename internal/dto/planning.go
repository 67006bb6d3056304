package dto

import "github.com/cmolina12/senehorario/internal/models"

// ToggleSectionRequest carries the course and the section being toggled.
// The full objects travel with the request because the service is stateless
// with respect to the catalog: the client already holds both.
type ToggleSectionRequest struct {
	Course  models.Course  `json:"course" validate:"required"`
	Section models.Section `json:"section" validate:"required"`
}

// PlanningView is the client-facing projection of a planner's state.
type PlanningView struct {
	SelectedSectionsByCourse map[string][]models.Section  `json:"selectedSectionsByCourse"`
	SelectedCoursesMeta      map[string]models.CourseMeta `json:"selectedCoursesMeta"`
	CourseOrder              []string                     `json:"courseOrder"`
	ScheduleCount            int                          `json:"scheduleCount"`
	SelectedScheduleIndex    int                          `json:"selectedScheduleIndex"`
	Events                   []models.CalendarEvent       `json:"events"`
	ScheduleIssue            *models.ScheduleIssue        `json:"scheduleIssue,omitempty"`
	LastAction               models.ToggleAction          `json:"lastAction,omitempty"`
}

// SectionView decorates a catalog section with display labels.
type SectionView struct {
	models.Section
	CycleLabel string `json:"cycleLabel"`
	TermLabel  string `json:"termLabel"`
}

// CourseView is a catalog course with decorated sections.
type CourseView struct {
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Credits  float64       `json:"credits"`
	Sections []SectionView `json:"sections"`
}
