package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type courseCatalogStub struct {
	courses      []models.Course
	sections     []models.Section
	err          error
	searchCalls  int
	sectionCalls int
	lastQuery    string
	lastCode     string
}

func (s *courseCatalogStub) SearchCourses(ctx context.Context, nameInput string) ([]models.Course, error) {
	s.searchCalls++
	s.lastQuery = nameInput
	return s.courses, s.err
}

func (s *courseCatalogStub) Sections(ctx context.Context, courseCode string) ([]models.Section, error) {
	s.sectionCalls++
	s.lastCode = courseCode
	return s.sections, s.err
}

func TestSearchNormalizesQuery(t *testing.T) {
	cat := &courseCatalogStub{courses: []models.Course{{Code: "MATE1105", Title: "Calculo Diferencial"}}}
	svc := NewCourseService(cat, nil)

	views, err := svc.Search(context.Background(), "  Calculo \t  Diferencial ")
	require.NoError(t, err)

	assert.Equal(t, "Calculo%Diferencial", cat.lastQuery)
	require.Len(t, views, 1)
	assert.Equal(t, "MATE1105", views[0].Code)
}

func TestSearchEmptyQuerySkipsBackend(t *testing.T) {
	cat := &courseCatalogStub{}
	svc := NewCourseService(cat, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		views, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	}
	assert.Equal(t, 0, cat.searchCalls)
}

func TestSearchWrapsBackendFailure(t *testing.T) {
	cat := &courseCatalogStub{err: errors.New("boom")}
	svc := NewCourseService(cat, nil)

	_, err := svc.Search(context.Background(), "calculo")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSearchFailure.Code, appErrors.FromError(err).Code)
}

func TestSectionsDecoratesLabels(t *testing.T) {
	cat := &courseCatalogStub{sections: []models.Section{
		{NRC: "1", PTRM: "8A", Term: "202519"},
		{NRC: "2", PTRM: "1", Term: "202520"},
	}}
	svc := NewCourseService(cat, nil)

	views, err := svc.Sections(context.Background(), " MATE1105 ")
	require.NoError(t, err)

	assert.Equal(t, "MATE1105", cat.lastCode)
	require.Len(t, views, 2)
	assert.Equal(t, "Primer Ciclo - 8A", views[0].CycleLabel)
	assert.Equal(t, "Intersemestral", views[0].TermLabel)
	assert.Equal(t, "16 Semanas", views[1].CycleLabel)
	assert.Equal(t, "202520", views[1].TermLabel)
}

func TestSectionsRequiresCode(t *testing.T) {
	svc := NewCourseService(&courseCatalogStub{}, nil)

	_, err := svc.Sections(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCycleLabel(t *testing.T) {
	assert.Equal(t, "Primer Ciclo - 8A", CycleLabel("8A"))
	assert.Equal(t, "Segundo Ciclo - 8B", CycleLabel("8B"))
	assert.Equal(t, "16 Semanas", CycleLabel("1"))
	assert.Equal(t, "9X", CycleLabel("9X"))
}
