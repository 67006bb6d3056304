package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/middleware"
	"github.com/cmolina12/senehorario/internal/models"
	"github.com/cmolina12/senehorario/internal/service"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
	"github.com/cmolina12/senehorario/pkg/response"
)

type planningService interface {
	Toggle(ctx context.Context, plannerID string, req dto.ToggleSectionRequest) (*dto.PlanningView, error)
	View(ctx context.Context, plannerID string) (*dto.PlanningView, error)
	Advance(ctx context.Context, plannerID string) (*dto.PlanningView, error)
	Retreat(ctx context.Context, plannerID string) (*dto.PlanningView, error)
	Clear(ctx context.Context, plannerID string) (*dto.PlanningView, error)
	CurrentEvents(ctx context.Context, plannerID string) ([]models.CalendarEvent, error)
}

type calendarRenderer interface {
	RenderConfig(alternative []models.CalendarEvent) service.RenderConfig
}

// PlanningHandler exposes the planning surface.
type PlanningHandler struct {
	service  planningService
	calendar calendarRenderer
}

// NewPlanningHandler constructs handler.
func NewPlanningHandler(svc planningService, calendar calendarRenderer) *PlanningHandler {
	return &PlanningHandler{service: svc, calendar: calendar}
}

// Get godoc
// @Summary Current planning view
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning [get]
func (h *PlanningHandler) Get(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Toggle godoc
// @Summary Toggle a section selection
// @Tags Planning
// @Accept json
// @Produce json
// @Param payload body dto.ToggleSectionRequest true "Course and section"
// @Success 200 {object} response.Envelope
// @Router /planning/toggle [post]
func (h *PlanningHandler) Toggle(c *gin.Context) {
	var req dto.ToggleSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.service.Toggle(c.Request.Context(), middleware.PlannerID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Next godoc
// @Summary Show the next schedule alternative
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/schedules/next [post]
func (h *PlanningHandler) Next(c *gin.Context) {
	view, err := h.service.Advance(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Previous godoc
// @Summary Show the previous schedule alternative
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/schedules/prev [post]
func (h *PlanningHandler) Previous(c *gin.Context) {
	view, err := h.service.Retreat(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Events godoc
// @Summary Render configuration for the displayed alternative
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/events [get]
func (h *PlanningHandler) Events(c *gin.Context) {
	events, err := h.service.CurrentEvents(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.calendar.RenderConfig(events))
}

// Clear godoc
// @Summary Reset the planning state
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning [delete]
func (h *PlanningHandler) Clear(c *gin.Context) {
	view, err := h.service.Clear(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
