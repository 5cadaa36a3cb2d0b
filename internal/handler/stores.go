package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/middleware"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

type StoresHandler struct{ svc service.StoreService }

func NewStoresHandler(svc service.StoreService) *StoresHandler {
	return &StoresHandler{svc: svc}
}

// Create godoc
// @Summary Create the account's store with its locations
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateStoreRequest true "Store"
// @Success 201 {object} dto.CreateStoreResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/stores [post]
func (h *StoresHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	acct := middleware.GetAccount(c)
	resp, err := h.svc.Create(c.Request.Context(), acct, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
