package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
	"github.com/cmolina12/senehorario/pkg/export"
)

type currentEventsProvider interface {
	CurrentEvents(ctx context.Context, plannerID string) ([]models.CalendarEvent, error)
}

// ExportService renders the currently displayed schedule as ICS, PDF or CSV.
type ExportService struct {
	planning      currentEventsProvider
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	ics           *export.ICSExporter
	semesterWeeks int
	logger        *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(planning currentEventsProvider, semesterWeeks int, logger *zap.Logger) *ExportService {
	if semesterWeeks <= 0 {
		semesterWeeks = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		planning:      planning,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		ics:           export.NewICSExporter(),
		semesterWeeks: semesterWeeks,
		logger:        logger,
	}
}

// ExportResult is a rendered schedule document.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Render produces the displayed schedule in the requested format.
func (s *ExportService) Render(ctx context.Context, plannerID, format string) (*ExportResult, error) {
	events, err := s.planning.CurrentEvents(ctx, plannerID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no displayed schedule to export")
	}

	switch strings.ToLower(format) {
	case "ics":
		return s.renderICS(events)
	case "pdf":
		content, err := s.pdf.Render(scheduleDataset(events), "Horario planeado")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "horario.pdf"}, nil
	case "csv":
		content, err := s.csv.Render(scheduleDataset(events))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "horario.csv"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) renderICS(events []models.CalendarEvent) (*ExportResult, error) {
	icsEvents := make([]export.Event, 0, len(events))
	for i, event := range events {
		icsEvents = append(icsEvents, export.Event{
			UID:         fmt.Sprintf("%s-%d@senehorario", event.Context.Section.NRC, i),
			Summary:     fmt.Sprintf("%s - %s", event.Context.CourseCode, event.Context.Section.SectionID),
			Description: event.Context.CourseTitle,
			Location:    event.Context.Section.Campus,
			Start:       event.Start,
			End:         event.End,
		})
	}

	content, err := s.ics.Render(icsEvents, s.semesterWeeks)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not render ics")
	}
	return &ExportResult{Content: content, ContentType: "text/calendar", Filename: "horario.ics"}, nil
}

func scheduleDataset(events []models.CalendarEvent) export.Dataset {
	headers := []string{"Curso", "Seccion", "NRC", "Dia", "Inicio", "Fin", "Creditos"}
	rows := make([]map[string]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, map[string]string{
			"Curso":    fmt.Sprintf("%s %s", event.Context.CourseCode, event.Context.CourseTitle),
			"Seccion":  event.Context.Section.SectionID,
			"NRC":      event.Context.Section.NRC,
			"Dia":      event.Start.Weekday().String(),
			"Inicio":   event.Start.Format("15:04"),
			"Fin":      event.End.Format("15:04"),
			"Creditos": fmt.Sprintf("%g", event.Context.CourseCredits),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
