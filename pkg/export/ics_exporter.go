package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// Event is one weekly-recurring calendar entry to serialize into ICS.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// ICSExporter serializes events as an iCalendar document. Each event repeats
// weekly for the given number of weeks, matching the semester length.
type ICSExporter struct{}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

// Render builds the VCALENDAR payload.
func (e *ICSExporter) Render(events []Event, weeks int) ([]byte, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("ics requires at least one event")
	}
	if weeks <= 0 {
		weeks = 1
	}

	rule, err := rrule.NewRRule(rrule.ROption{Freq: rrule.WEEKLY, Count: weeks})
	if err != nil {
		return nil, fmt.Errorf("build weekly rrule: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//senehorario//planning//ES")

	now := time.Now().UTC()
	for _, event := range events {
		ve := cal.AddEvent(event.UID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(event.Start)
		ve.SetEndAt(event.End)
		ve.SetSummary(event.Summary)
		if event.Description != "" {
			ve.SetDescription(event.Description)
		}
		if event.Location != "" {
			ve.SetLocation(event.Location)
		}
		ve.AddRrule(rule.String())
	}

	return []byte(cal.Serialize()), nil
}
