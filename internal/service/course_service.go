package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type courseCatalog interface {
	SearchCourses(ctx context.Context, nameInput string) ([]models.Course, error)
	Sections(ctx context.Context, courseCode string) ([]models.Section, error)
}

// CourseService fronts the catalog backend: it normalizes free-text queries
// and decorates sections with display labels.
type CourseService struct {
	catalog courseCatalog
	logger  *zap.Logger
}

// NewCourseService constructs the service.
func NewCourseService(catalog courseCatalog, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{catalog: catalog, logger: logger}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// Search looks up courses by free text. The query is trimmed and internal
// whitespace becomes the backend wildcard. An empty query returns an empty
// result without touching the network.
func (s *CourseService) Search(ctx context.Context, query string) ([]dto.CourseView, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []dto.CourseView{}, nil
	}

	wildcarded := innerWhitespace.ReplaceAllString(trimmed, "%")
	courses, err := s.catalog.SearchCourses(ctx, wildcarded)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSearchFailure.Code, appErrors.ErrSearchFailure.Status,
			"the course search backend failed, try again later")
	}

	views := make([]dto.CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, courseView(course))
	}
	return views, nil
}

// Sections returns the decorated sections for a full course code.
func (s *CourseService) Sections(ctx context.Context, courseCode string) ([]dto.SectionView, error) {
	code := strings.TrimSpace(courseCode)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}

	sections, err := s.catalog.Sections(ctx, code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSearchFailure.Code, appErrors.ErrSearchFailure.Status,
			"the course search backend failed, try again later")
	}

	views := make([]dto.SectionView, 0, len(sections))
	for _, section := range sections {
		views = append(views, sectionView(section))
	}
	return views, nil
}

func courseView(course models.Course) dto.CourseView {
	sections := make([]dto.SectionView, 0, len(course.Sections))
	for _, section := range course.Sections {
		sections = append(sections, sectionView(section))
	}
	return dto.CourseView{
		Code:     course.Code,
		Title:    course.Title,
		Credits:  course.Credits,
		Sections: sections,
	}
}

func sectionView(section models.Section) dto.SectionView {
	return dto.SectionView{
		Section:    section,
		CycleLabel: CycleLabel(section.PTRM),
		TermLabel:  TermLabel(section.Term),
	}
}

// CycleLabel translates a PTRM cycle identifier into its display label.
func CycleLabel(ptrm string) string {
	switch ptrm {
	case "8A":
		return "Primer Ciclo - 8A"
	case "8B":
		return "Segundo Ciclo - 8B"
	case "1":
		return "16 Semanas"
	default:
		return ptrm
	}
}

// TermLabel translates the intersemestral term identifier.
func TermLabel(term string) string {
	if term == "202519" {
		return "Intersemestral"
	}
	return term
}
