package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmolina12/senehorario/internal/dto"
	"github.com/cmolina12/senehorario/pkg/response"
)

type sessionService interface {
	Issue() (*dto.SessionResponse, error)
}

// SessionHandler issues anonymous planner sessions.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(svc sessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Create godoc
// @Summary Issue a planner session token
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	session, err := h.service.Issue()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, session)
}
