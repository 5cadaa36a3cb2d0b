package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullbootcamp/pos-saas-sub000/internal/middleware"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

type StatusHandler struct{ svc service.StatusService }

func NewStatusHandler(svc service.StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Get godoc
// @Summary Onboarding status snapshot for the authenticated account
// @Tags status
// @Produce json
// @Security BearerAuth
// @Success 200 {object} onboarding.Status
// @Failure 401 {object} apierror.APIError
// @Router /api/status [get]
func (h *StatusHandler) Get(c *gin.Context) {
	acct := middleware.GetAccount(c)
	status, err := h.svc.Status(c.Request.Context(), acct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
