package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleKeepsSelectionMetaAndOrderInSync(t *testing.T) {
	state := NewPlanningState()
	mate := Course{Code: "MATE1105", Title: "Calculo Diferencial", Credits: 3}
	fisi := Course{Code: "FISI1018", Title: "Fisica 1", Credits: 3}

	state.Toggle(mate, Section{NRC: "1"})
	state.Toggle(fisi, Section{NRC: "2"})
	state.Toggle(mate, Section{NRC: "3"})

	assert.Equal(t, []string{"MATE1105", "FISI1018"}, state.SelectedCourseCodes())
	assert.Len(t, state.SelectedSectionsByCourse["MATE1105"], 2)
	assert.Contains(t, state.SelectedCoursesMeta, "MATE1105")
	assert.Contains(t, state.SelectedCoursesMeta, "FISI1018")

	// Clearing the last section of a course drops its metadata and order
	// entry with it.
	action := state.Toggle(fisi, Section{NRC: "2"})
	assert.Equal(t, ToggleRemovedCourseCleared, action)
	assert.NotContains(t, state.SelectedSectionsByCourse, "FISI1018")
	assert.NotContains(t, state.SelectedCoursesMeta, "FISI1018")
	assert.Equal(t, []string{"MATE1105"}, state.SelectedCourseCodes())
}

func TestToggleIsKeyedByNRC(t *testing.T) {
	state := NewPlanningState()
	course := Course{Code: "MATE1105"}

	state.Toggle(course, Section{NRC: "1", SectionID: "A"})
	// Same NRC with different incidental fields still toggles off.
	action := state.Toggle(course, Section{NRC: "1", SectionID: "B"})

	assert.Equal(t, ToggleRemovedCourseCleared, action)
	assert.False(t, state.HasSelections())
}

func TestIsSelected(t *testing.T) {
	state := NewPlanningState()
	state.Toggle(Course{Code: "MATE1105"}, Section{NRC: "1"})

	assert.True(t, state.IsSelected("MATE1105", "1"))
	assert.False(t, state.IsSelected("MATE1105", "2"))
	assert.False(t, state.IsSelected("FISI1018", "1"))
	assert.True(t, state.IsCourseSelected("MATE1105"))
	assert.False(t, state.IsCourseSelected("FISI1018"))
}

func TestCandidatesCopiesSelection(t *testing.T) {
	state := NewPlanningState()
	state.Toggle(Course{Code: "MATE1105"}, Section{NRC: "1"})
	state.Toggle(Course{Code: "FISI1018"}, Section{NRC: "2"})

	candidates := state.Candidates()
	require.Len(t, candidates, 2)
	assert.Equal(t, "1", candidates[0][0].NRC)
	assert.Equal(t, "2", candidates[1][0].NRC)

	// Mutating the copy leaves the state untouched.
	candidates[0][0].NRC = "zzz"
	assert.Equal(t, "1", state.SelectedSectionsByCourse["MATE1105"][0].NRC)
}

func TestNormalizeRepairsRestoredState(t *testing.T) {
	state := &PlanningState{
		SelectedSectionsByCourse: map[string][]Section{
			"MATE1105": {{NRC: "1"}},
			"EMPTY":    {},
		},
		SelectedCoursesMeta: map[string]CourseMeta{
			"MATE1105": {Title: "Calculo"},
			"ORPHAN":   {Title: "Gone"},
		},
		CourseOrder:           []string{"GHOST", "MATE1105", "MATE1105"},
		SelectedScheduleIndex: 7,
	}

	state.Normalize()

	assert.Equal(t, []string{"MATE1105"}, state.CourseOrder)
	assert.NotContains(t, state.SelectedSectionsByCourse, "EMPTY")
	assert.NotContains(t, state.SelectedCoursesMeta, "ORPHAN")
	assert.Equal(t, 0, state.SelectedScheduleIndex)
}

func TestNormalizeAppendsCoursesMissingFromOrder(t *testing.T) {
	state := &PlanningState{
		SelectedSectionsByCourse: map[string][]Section{
			"B": {{NRC: "1"}},
			"A": {{NRC: "2"}},
		},
	}

	state.Normalize()

	assert.Equal(t, []string{"A", "B"}, state.CourseOrder)
	assert.NotNil(t, state.SelectedCoursesMeta)
}

func TestNormalizeOnNilMaps(t *testing.T) {
	state := &PlanningState{}
	state.Normalize()

	assert.NotNil(t, state.SelectedSectionsByCourse)
	assert.NotNil(t, state.SelectedCoursesMeta)
	assert.False(t, state.HasSelections())
}

func TestCurrentEventsOutOfRange(t *testing.T) {
	state := NewPlanningState()
	assert.Nil(t, state.CurrentEvents())

	state.ScheduleOptions = [][]CalendarEvent{{{Title: "x"}}}
	state.SelectedScheduleIndex = 3
	assert.Nil(t, state.CurrentEvents())

	state.SelectedScheduleIndex = 0
	require.Len(t, state.CurrentEvents(), 1)
}
