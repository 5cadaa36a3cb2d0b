package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/middleware"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

type SubscriptionsHandler struct{ svc service.SubscriptionService }

func NewSubscriptionsHandler(svc service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{svc: svc}
}

// Select godoc
// @Summary Select or change the account's plan
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SelectPlanRequest true "Plan"
// @Success 201 {object} dto.SelectPlanResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/subscriptions [post]
func (h *SubscriptionsHandler) Select(c *gin.Context) {
	var req dto.SelectPlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	acct := middleware.GetAccount(c)
	resp, err := h.svc.SelectPlan(c.Request.Context(), acct, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SubscriptionsHandler) UpdateEnd(c *gin.Context) {
	var req dto.UpdateSubscriptionEndRequest
	if !bindAndValidate(c, &req) {
		return
	}
	acct := middleware.GetAccount(c)
	if err := h.svc.UpdateEnd(c.Request.Context(), acct, req.EndsAt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Subscription end date updated"})
}

// Plans is public: the pricing page renders before any account exists.
func (h *SubscriptionsHandler) Plans(c *gin.Context) {
	resp, err := h.svc.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
