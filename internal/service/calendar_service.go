package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/models"
)

// referenceMonday anchors every event to one fixed calendar week. Only the
// weekday and time of day carry meaning; the absolute dates exist because
// calendar surfaces want concrete instants.
var referenceMonday = time.Date(2025, time.July, 28, 0, 0, 0, 0, time.UTC)

// eventPalette is assigned positionally: section index within the
// alternative, modulo palette size. The same section can land on different
// colors across alternatives depending on its position.
var eventPalette = []string{
	"#67A6D4", "#A05DD4", "#E1A557", "#C78A6B",
	"#E1628B", "#9595FF", "#81BA6C", "#62E1C9",
}

const eventTextColor = "#222"

// CalendarService maps solver schedules onto calendar events anchored to the
// reference week.
type CalendarService struct {
	logger *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{logger: logger}
}

// RenderConfig is the calendar surface configuration for one displayed
// alternative. It is recomputed from scratch on every navigation instead of
// being mutated in place.
type RenderConfig struct {
	InitialDate string                 `json:"initialDate"`
	SlotMinTime string                 `json:"slotMinTime"`
	SlotMaxTime string                 `json:"slotMaxTime"`
	HiddenDays  []int                  `json:"hiddenDays"`
	Events      []models.CalendarEvent `json:"events"`
}

// MapSchedules converts schedule alternatives into per-alternative event
// lists, preserving the outer ordering, section order within each
// alternative, and meeting order within each section.
func (s *CalendarService) MapSchedules(schedules [][]models.PlannedSection) ([][]models.CalendarEvent, error) {
	options := make([][]models.CalendarEvent, 0, len(schedules))
	for _, schedule := range schedules {
		events := make([]models.CalendarEvent, 0, len(schedule))
		for idx, section := range schedule {
			sectionEvents, err := s.mapSection(section, idx)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", section.NRC, err)
			}
			events = append(events, sectionEvents...)
		}
		options = append(options, events)
	}
	return options, nil
}

// RenderConfig builds the rendering configuration for one alternative.
func (s *CalendarService) RenderConfig(alternative []models.CalendarEvent) RenderConfig {
	if alternative == nil {
		alternative = []models.CalendarEvent{}
	}
	return RenderConfig{
		InitialDate: referenceMonday.Format("2006-01-02"),
		SlotMinTime: "06:00:00",
		SlotMaxTime: "20:00:00",
		HiddenDays:  []int{0},
		Events:      alternative,
	}
}

func (s *CalendarService) mapSection(section models.PlannedSection, idx int) ([]models.CalendarEvent, error) {
	color := eventPalette[idx%len(eventPalette)]
	events := make([]models.CalendarEvent, 0, len(section.Meetings))

	for _, meeting := range section.Meetings {
		dayIdx, err := meeting.Day.Index()
		if err != nil {
			return nil, err
		}
		day := referenceMonday.AddDate(0, 0, dayIdx-int(referenceMonday.Weekday()))

		start, err := atClock(day, meeting.Start)
		if err != nil {
			return nil, fmt.Errorf("meeting start: %w", err)
		}
		end, err := atClock(day, meeting.End)
		if err != nil {
			return nil, fmt.Errorf("meeting end: %w", err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("meeting on %s ends at or before its start", meeting.Day)
		}

		events = append(events, models.CalendarEvent{
			Title:     fmt.Sprintf("%s - %s | %s", section.CourseCode, section.SectionID, section.CourseTitle),
			Start:     start,
			End:       end,
			Color:     color,
			TextColor: eventTextColor,
			Context: models.EventContext{
				CourseCode:    section.CourseCode,
				CourseTitle:   section.CourseTitle,
				CourseCredits: section.CourseCredits,
				Section:       section.Section,
			},
		})
	}
	return events, nil
}

// atClock attaches an "HH:MM" or "HH:MM:SS" time of day to the given date.
// Seconds default to zero and sub-second precision is not representable.
func atClock(day time.Time, clock string) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed time of day %q", clock)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed time of day %q", clock)
		}
		fields[i] = n
	}
	hour, minute, second := fields[0], fields[1], fields[2]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("time of day %q out of range", clock)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location()), nil
}
