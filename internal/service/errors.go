package service

import "errors"

// Sentinel errors shared by the services and mapped to the HTTP error
// taxonomy at the handler boundary. Login failures are deliberately
// uniform: "no such email" and "wrong password" both surface as
// ErrInvalidCredentials so the API cannot be used to enumerate accounts.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrAccountLocked       = errors.New("account locked")
	ErrEmailTaken          = errors.New("email already registered")
	ErrVerificationInvalid = errors.New("invalid or expired verification token")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrFreeDemoLimit       = errors.New("Free demo limited to 1000 locations")
	ErrNoAssignees         = errors.New("at least one assignee is required")
	ErrNotFound            = errors.New("not found")
	ErrSlugExhausted       = errors.New("could not find a free slug")
)
