// Package apierror provides the standardized error envelope for the API.
// All 4xx/5xx responses go through this package so that clients can branch
// on a stable machine-readable code without parsing human-facing text, and
// so that internal details (stack traces, DB errors) never leak.
package apierror

// Codes returned in the APIError envelope. The SPA branches on these:
// an expired token triggers a silent re-login, a locked account shows a
// cooldown message, an expired subscription routes to the billing page.
const (
	CodeValidation          = "validation_failed"
	CodeTokenMissing        = "token_missing"
	CodeTokenExpired        = "token_expired"
	CodeTokenInvalid        = "token_invalid"
	CodeMFARequired         = "mfa_required"
	CodeUserNotFound        = "user_not_found"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeEmailNotVerified    = "email_not_verified"
	CodeAccountLocked       = "account_locked"
	CodeSubscriptionExpired = "subscription_expired"
	CodeForbidden           = "forbidden"
	CodeConflict            = "conflict"
	CodeNotFound            = "not_found"
	CodeRateLimited         = "rate_limited"
	CodeInternal            = "internal_error"
)

// APIError is the canonical error envelope for all error responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, detail string) *APIError {
	return &APIError{Code: code, Detail: detail}
}

// Internal returns the generic 500 envelope. The real error is logged
// server-side, never echoed to the client.
func Internal() *APIError {
	return &APIError{Code: CodeInternal, Detail: "Internal server error"}
}

// ValidationError wraps multiple field-level errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Detail: "Validation failed", Fields: fields}
}
