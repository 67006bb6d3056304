package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmolina12/senehorario/internal/dto"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
)

type courseServiceMock struct {
	searchResp   []dto.CourseView
	sectionsResp []dto.SectionView
	err          error
	lastQuery    string
	lastCode     string
}

func (m *courseServiceMock) Search(ctx context.Context, query string) ([]dto.CourseView, error) {
	m.lastQuery = query
	return m.searchResp, m.err
}

func (m *courseServiceMock) Sections(ctx context.Context, courseCode string) ([]dto.SectionView, error) {
	m.lastCode = courseCode
	return m.sectionsResp, m.err
}

func TestCourseHandlerSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &courseServiceMock{searchResp: []dto.CourseView{{Code: "MATE1105"}}}
	h := NewCourseHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses?q=calculo", nil)

	h.Search(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "calculo", mockSvc.lastQuery)

	var envelope struct {
		Data []dto.CourseView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "MATE1105", envelope.Data[0].Code)
}

func TestCourseHandlerSearchBackendFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &courseServiceMock{err: appErrors.Clone(appErrors.ErrSearchFailure, "")}
	h := NewCourseHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses?q=calculo", nil)

	h.Search(c)

	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCourseHandlerSections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &courseServiceMock{sectionsResp: []dto.SectionView{{CycleLabel: "Primer Ciclo - 8A"}}}
	h := NewCourseHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses/MATE1105/sections", nil)
	c.Params = gin.Params{{Key: "code", Value: "MATE1105"}}

	h.Sections(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MATE1105", mockSvc.lastCode)
}
