package models

import (
	"sort"
	"time"
)

// ToggleAction describes the outcome of toggling a section.
type ToggleAction string

const (
	ToggleAdded                ToggleAction = "added"
	ToggleRemoved              ToggleAction = "removed"
	ToggleRemovedCourseCleared ToggleAction = "removed-and-course-cleared"
)

// CourseMeta caches display metadata for a selected course.
type CourseMeta struct {
	Title   string  `json:"title"`
	Credits float64 `json:"credits"`
}

// PlannedSection is a solver-returned section annotated with the metadata of
// the course it was chosen for.
type PlannedSection struct {
	Section
	CourseCode    string  `json:"courseCode"`
	CourseTitle   string  `json:"courseTitle"`
	CourseCredits float64 `json:"courseCredits"`
}

// EventContext is the typed side channel attached to every calendar event so
// a rendered block can be resolved back to its section and course.
type EventContext struct {
	CourseCode    string  `json:"courseCode"`
	CourseTitle   string  `json:"courseTitle"`
	CourseCredits float64 `json:"courseCredits"`
	Section       Section `json:"section"`
}

// CalendarEvent is one time block on the weekly calendar, anchored to the
// fixed reference week.
type CalendarEvent struct {
	Title     string       `json:"title"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Color     string       `json:"color"`
	TextColor string       `json:"textColor"`
	Context   EventContext `json:"context"`
}

// ScheduleIssue is a blocking, user-visible planning problem kept on the
// view state until the user corrects it.
type ScheduleIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlanningState is the full per-planner view state: the manual section
// selection, cached course metadata, the schedule alternatives last returned
// by the solver (already mapped to calendar events), and the displayed index.
type PlanningState struct {
	SelectedSectionsByCourse map[string][]Section  `json:"selectedSectionsByCourse"`
	SelectedCoursesMeta      map[string]CourseMeta `json:"selectedCoursesMeta"`
	CourseOrder              []string              `json:"courseOrder"`
	ScheduleOptions          [][]CalendarEvent     `json:"scheduleOptions"`
	SelectedScheduleIndex    int                   `json:"selectedScheduleIndex"`
	LastIssue                *ScheduleIssue        `json:"lastIssue,omitempty"`
}

// NewPlanningState returns an empty state.
func NewPlanningState() *PlanningState {
	return &PlanningState{
		SelectedSectionsByCourse: make(map[string][]Section),
		SelectedCoursesMeta:      make(map[string]CourseMeta),
	}
}

// Toggle adds the section to the course's selection when absent and removes
// it when present, keyed by NRC. When a removal empties the course, the
// course's selection set and metadata are dropped together.
func (s *PlanningState) Toggle(course Course, section Section) ToggleAction {
	if s.SelectedSectionsByCourse == nil {
		s.SelectedSectionsByCourse = make(map[string][]Section)
	}
	if s.SelectedCoursesMeta == nil {
		s.SelectedCoursesMeta = make(map[string]CourseMeta)
	}

	if _, ok := s.SelectedSectionsByCourse[course.Code]; !ok {
		s.SelectedSectionsByCourse[course.Code] = []Section{}
		s.SelectedCoursesMeta[course.Code] = CourseMeta{Title: course.Title, Credits: course.Credits}
		s.CourseOrder = append(s.CourseOrder, course.Code)
	}

	selected := s.SelectedSectionsByCourse[course.Code]
	for i, sec := range selected {
		if sec.NRC != section.NRC {
			continue
		}
		selected = append(selected[:i], selected[i+1:]...)
		if len(selected) == 0 {
			delete(s.SelectedSectionsByCourse, course.Code)
			delete(s.SelectedCoursesMeta, course.Code)
			s.removeFromOrder(course.Code)
			return ToggleRemovedCourseCleared
		}
		s.SelectedSectionsByCourse[course.Code] = selected
		return ToggleRemoved
	}

	s.SelectedSectionsByCourse[course.Code] = append(selected, section)
	return ToggleAdded
}

// IsSelected reports whether the NRC is part of the course's selection.
func (s *PlanningState) IsSelected(courseCode, nrc string) bool {
	for _, sec := range s.SelectedSectionsByCourse[courseCode] {
		if sec.NRC == nrc {
			return true
		}
	}
	return false
}

// IsCourseSelected reports whether the course has any selected section.
func (s *PlanningState) IsCourseSelected(courseCode string) bool {
	return len(s.SelectedSectionsByCourse[courseCode]) > 0
}

// SelectedCourseCodes returns the selected codes in insertion order.
func (s *PlanningState) SelectedCourseCodes() []string {
	codes := make([]string, len(s.CourseOrder))
	copy(codes, s.CourseOrder)
	return codes
}

// HasSelections reports whether any course has a selected section.
func (s *PlanningState) HasSelections() bool {
	return len(s.SelectedSectionsByCourse) > 0
}

// Candidates returns one ordered candidate list per selected course, in the
// same order as SelectedCourseCodes. The slices are copies so an in-flight
// solver request never observes a later mutation.
func (s *PlanningState) Candidates() [][]Section {
	candidates := make([][]Section, 0, len(s.CourseOrder))
	for _, code := range s.CourseOrder {
		sections := make([]Section, len(s.SelectedSectionsByCourse[code]))
		copy(sections, s.SelectedSectionsByCourse[code])
		candidates = append(candidates, sections)
	}
	return candidates
}

// CurrentEvents returns the event list for the displayed alternative.
func (s *PlanningState) CurrentEvents() []CalendarEvent {
	if s.SelectedScheduleIndex < 0 || s.SelectedScheduleIndex >= len(s.ScheduleOptions) {
		return nil
	}
	return s.ScheduleOptions[s.SelectedScheduleIndex]
}

// Normalize repairs a state after an untrusted restore: maps are
// re-initialized, the course order is reconciled against the selection map,
// and an out-of-range schedule index is clamped to zero.
func (s *PlanningState) Normalize() {
	if s.SelectedSectionsByCourse == nil {
		s.SelectedSectionsByCourse = make(map[string][]Section)
	}
	if s.SelectedCoursesMeta == nil {
		s.SelectedCoursesMeta = make(map[string]CourseMeta)
	}

	// Drop empty selection sets and their metadata so the presence
	// invariant holds after restore.
	for code, sections := range s.SelectedSectionsByCourse {
		if len(sections) == 0 {
			delete(s.SelectedSectionsByCourse, code)
			delete(s.SelectedCoursesMeta, code)
		}
	}
	for code := range s.SelectedCoursesMeta {
		if _, ok := s.SelectedSectionsByCourse[code]; !ok {
			delete(s.SelectedCoursesMeta, code)
		}
	}

	order := make([]string, 0, len(s.SelectedSectionsByCourse))
	seen := make(map[string]bool, len(s.CourseOrder))
	for _, code := range s.CourseOrder {
		if _, ok := s.SelectedSectionsByCourse[code]; ok && !seen[code] {
			order = append(order, code)
			seen[code] = true
		}
	}
	missing := make([]string, 0)
	for code := range s.SelectedSectionsByCourse {
		if !seen[code] {
			missing = append(missing, code)
		}
	}
	sort.Strings(missing)
	s.CourseOrder = append(order, missing...)

	if s.SelectedScheduleIndex < 0 || s.SelectedScheduleIndex >= len(s.ScheduleOptions) {
		s.SelectedScheduleIndex = 0
	}
}

func (s *PlanningState) removeFromOrder(code string) {
	for i, c := range s.CourseOrder {
		if c == code {
			s.CourseOrder = append(s.CourseOrder[:i], s.CourseOrder[i+1:]...)
			return
		}
	}
}
