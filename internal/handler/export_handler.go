package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/middleware"
	"github.com/cmolina12/senehorario/internal/service"
	"github.com/cmolina12/senehorario/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, plannerID, format string) (*service.ExportResult, error)
}

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Download godoc
// @Summary Download the displayed schedule
// @Tags Planning
// @Produce octet-stream
// @Param format query string true "ics, pdf or csv"
// @Success 200
// @Router /planning/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	result, err := h.service.Render(c.Request.Context(), middleware.PlannerID(c), c.DefaultQuery("format", "ics"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Content)
}
