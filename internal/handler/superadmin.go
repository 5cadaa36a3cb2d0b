package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

// SuperadminHandler serves the internal console. Routes are guarded by
// RequireRole(superadmin, tech lead) in the router.
type SuperadminHandler struct{ svc service.AdminService }

func NewSuperadminHandler(svc service.AdminService) *SuperadminHandler {
	return &SuperadminHandler{svc: svc}
}

func (h *SuperadminHandler) ListUsers(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuperadminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SuperadminHandler) ListTasks(c *gin.Context) {
	resp, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuperadminHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateTask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
