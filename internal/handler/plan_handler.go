package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/internal/middleware"
	"github.com/cmolina12/senehorario/internal/models"
	appErrors "github.com/cmolina12/senehorario/pkg/errors"
	"github.com/cmolina12/senehorario/pkg/response"
)

type planService interface {
	Save(ctx context.Context, plannerID string, req dto.SavePlanRequest) (*models.SavedPlan, error)
	List(ctx context.Context, plannerID string) ([]dto.PlanSummary, error)
	Load(ctx context.Context, plannerID, id string) (*dto.PlanningView, error)
	Delete(ctx context.Context, plannerID, id string) error
}

// PlanHandler exposes saved plan snapshots.
type PlanHandler struct {
	service planService
}

// NewPlanHandler constructs handler.
func NewPlanHandler(svc planService) *PlanHandler {
	return &PlanHandler{service: svc}
}

// Save godoc
// @Summary Save the current planning state under a name
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body dto.SavePlanRequest true "Plan name"
// @Success 201 {object} response.Envelope
// @Router /plans [post]
func (h *PlanHandler) Save(c *gin.Context) {
	var req dto.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.service.Save(c.Request.Context(), middleware.PlannerID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// List godoc
// @Summary List saved plans
// @Tags Plans
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.service.List(c.Request.Context(), middleware.PlannerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans)
}

// Load godoc
// @Summary Load a saved plan into the live planning state
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{id}/load [post]
func (h *PlanHandler) Load(c *gin.Context) {
	view, err := h.service.Load(c.Request.Context(), middleware.PlannerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a saved plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 204
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PlannerID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
