package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/pkg/response"
)

type courseService interface {
	Search(ctx context.Context, query string) ([]dto.CourseView, error)
	Sections(ctx context.Context, courseCode string) ([]dto.SectionView, error)
}

// CourseHandler exposes catalog lookups.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs handler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Search godoc
// @Summary Search courses by free text
// @Tags Courses
// @Produce json
// @Param q query string false "Free-text query"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) Search(c *gin.Context) {
	courses, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Sections godoc
// @Summary List sections for a course code
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/sections [get]
func (h *CourseHandler) Sections(c *gin.Context) {
	sections, err := h.service.Sections(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections)
}
