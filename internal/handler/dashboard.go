package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/middleware"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

// DashboardHandler marks the final onboarding milestone. The dashboard
// itself is rendered client-side; the backend only records that it was
// bootstrapped.
type DashboardHandler struct{ accounts repository.AccountRepository }

func NewDashboardHandler(accounts repository.AccountRepository) *DashboardHandler {
	return &DashboardHandler{accounts: accounts}
}

func (h *DashboardHandler) Bootstrap(c *gin.Context) {
	acct := middleware.GetAccount(c)
	if err := h.accounts.SetDashboardCreated(c.Request.Context(), acct.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Dashboard created"})
}
