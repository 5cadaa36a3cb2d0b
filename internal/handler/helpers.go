package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fullbootcamp/pos-saas-sub000/internal/apierror"
	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator
// tags. Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinel errors onto the HTTP taxonomy.
// Anything unrecognized is pushed to the error middleware as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidCredentials, "Invalid email or password"))
	case errors.Is(err, service.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, apierror.New(apierror.CodeEmailNotVerified, "Email not verified"))
	case errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusForbidden, apierror.New(apierror.CodeAccountLocked, "Account locked, try again later"))
	case errors.Is(err, service.ErrEmailTaken):
		// 400 rather than 409 to match what the SPA expects.
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeConflict, "Email already registered"))
	case errors.Is(err, service.ErrVerificationInvalid):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "Invalid or expired verification token"))
	case errors.Is(err, service.ErrFreeDemoLimit):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "Free demo limited to 1000 locations"))
	case errors.Is(err, service.ErrNoAssignees):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "At least one assignee is required"))
	case errors.Is(err, service.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, "Plan not found"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, "Not found"))
	case errors.Is(err, auth.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeTokenExpired, "Session expired, please log in again"))
	case errors.Is(err, auth.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeTokenInvalid, "Invalid session"))
	default:
		_ = c.Error(err)
	}
}
