package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmolina12/senehorario/internal/models"
)

func plannedSection(course, sectionID, nrc string, meetings ...models.Meeting) models.PlannedSection {
	return models.PlannedSection{
		Section:       models.Section{NRC: nrc, SectionID: sectionID, Meetings: meetings},
		CourseCode:    course,
		CourseTitle:   "Titulo " + course,
		CourseCredits: 3,
	}
}

func TestMapSchedulesAnchorsToReferenceWeek(t *testing.T) {
	svc := NewCalendarService(nil)

	schedules := [][]models.PlannedSection{{
		plannedSection("MATE1105", "1", "10876", models.Meeting{Day: models.Wednesday, Start: "08:00", End: "09:30"}),
	}}

	options, err := svc.MapSchedules(schedules)
	require.NoError(t, err)
	require.Len(t, options, 1)
	require.Len(t, options[0], 1)

	event := options[0][0]
	// Wednesday of the week starting Monday 2025-07-28.
	assert.Equal(t, time.Date(2025, time.July, 30, 8, 0, 0, 0, time.UTC), event.Start)
	assert.Equal(t, time.Date(2025, time.July, 30, 9, 30, 0, 0, time.UTC), event.End)
	assert.Equal(t, 90*time.Minute, event.End.Sub(event.Start))
	assert.Equal(t, "MATE1105 - 1 | Titulo MATE1105", event.Title)
	assert.Equal(t, "#222", event.TextColor)
	assert.Equal(t, "MATE1105", event.Context.CourseCode)
	assert.Equal(t, "10876", event.Context.Section.NRC)
}

func TestMapSchedulesAssignsColorsByPosition(t *testing.T) {
	svc := NewCalendarService(nil)

	meeting := models.Meeting{Day: models.Monday, Start: "10:00", End: "11:00"}
	schedule := make([]models.PlannedSection, 0, len(eventPalette)+1)
	for i := 0; i <= len(eventPalette); i++ {
		schedule = append(schedule, plannedSection("C", "1", "n", meeting))
	}

	options, err := svc.MapSchedules([][]models.PlannedSection{schedule})
	require.NoError(t, err)
	events := options[0]

	assert.Equal(t, eventPalette[0], events[0].Color)
	assert.Equal(t, eventPalette[1], events[1].Color)
	// Position wraps around the palette.
	assert.Equal(t, eventPalette[0], events[len(eventPalette)].Color)
}

func TestMapSchedulesHandlesSecondsAndSpansWholeWeek(t *testing.T) {
	svc := NewCalendarService(nil)

	schedules := [][]models.PlannedSection{{
		plannedSection("C", "1", "n",
			models.Meeting{Day: models.Sunday, Start: "06:00:00", End: "07:15:00"},
			models.Meeting{Day: models.Saturday, Start: "18:00", End: "19:00"},
		),
	}}

	options, err := svc.MapSchedules(schedules)
	require.NoError(t, err)
	events := options[0]
	require.Len(t, events, 2)

	assert.Equal(t, time.Sunday, events[0].Start.Weekday())
	assert.Equal(t, time.Saturday, events[1].Start.Weekday())
	// All events land inside the same reference week.
	assert.Equal(t, time.Date(2025, time.July, 27, 6, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2025, time.August, 2, 18, 0, 0, 0, time.UTC), events[1].Start)
}

func TestMapSchedulesRejectsUnknownWeekday(t *testing.T) {
	svc := NewCalendarService(nil)

	_, err := svc.MapSchedules([][]models.PlannedSection{{
		plannedSection("C", "1", "n", models.Meeting{Day: "FUNDAY", Start: "08:00", End: "09:00"}),
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FUNDAY")
}

func TestMapSchedulesRejectsInvertedMeeting(t *testing.T) {
	svc := NewCalendarService(nil)

	_, err := svc.MapSchedules([][]models.PlannedSection{{
		plannedSection("C", "1", "n", models.Meeting{Day: models.Monday, Start: "10:00", End: "10:00"}),
	}})
	require.Error(t, err)
}

func TestMapSchedulesRejectsMalformedClock(t *testing.T) {
	svc := NewCalendarService(nil)

	for _, clock := range []string{"25:00", "10:71", "10", "ten:oh-five", ""} {
		_, err := svc.MapSchedules([][]models.PlannedSection{{
			plannedSection("C", "1", "n", models.Meeting{Day: models.Monday, Start: clock, End: "23:00"}),
		}})
		require.Error(t, err, "clock %q", clock)
	}
}

func TestRenderConfig(t *testing.T) {
	svc := NewCalendarService(nil)

	cfg := svc.RenderConfig(nil)
	assert.Equal(t, "2025-07-28", cfg.InitialDate)
	assert.Equal(t, "06:00:00", cfg.SlotMinTime)
	assert.Equal(t, "20:00:00", cfg.SlotMaxTime)
	assert.Equal(t, []int{0}, cfg.HiddenDays)
	assert.NotNil(t, cfg.Events)
	assert.Empty(t, cfg.Events)

	events := []models.CalendarEvent{{Title: "x"}}
	assert.Equal(t, events, svc.RenderConfig(events).Events)
}
