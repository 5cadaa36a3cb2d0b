// Package onboarding projects raw account/subscription rows into the
// read-only progress snapshot that gates access and drives the SPA's
// progress bar. Pure functions of their inputs; no side effects.
package onboarding

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

const milestoneCount = 5

// SubscriptionInfo is the active subscription snapshot embedded in Status,
// nil when the account has never selected a plan.
type SubscriptionInfo struct {
	PlanName  string          `json:"plan_name"`
	Price     decimal.Decimal `json:"price"`
	Interval  string          `json:"interval"`
	StartsAt  time.Time       `json:"starts_at"`
	EndsAt    time.Time       `json:"ends_at"`
	AutoRenew bool            `json:"auto_renew"`
}

// Status describes how far along an account is in onboarding.
type Status struct {
	DisplayName string `json:"display_name"`

	// Milestones. Registered is always true once an Account row exists.
	Registered       bool `json:"registered"`
	EmailVerified    bool `json:"email_verified"`
	StoreSetup       bool `json:"store_setup"`
	PlanSelected     bool `json:"plan_selected"`
	DashboardCreated bool `json:"dashboard_created"`

	// Completion is completedMilestones / 5, for the progress bar.
	Completion float64 `json:"completion"`

	PlanID             *uint             `json:"plan_id"`
	Subscription       *SubscriptionInfo `json:"subscription"`
	TrialEndsAt        *time.Time        `json:"trial_ends_at"`
	SubscriptionEndsAt *time.Time        `json:"subscription_ends_at"`
}

// Project computes the status snapshot. sub and plan may be nil when the
// account has no active subscription.
func Project(acct *model.Account, sub *model.Subscription, plan *model.Plan) Status {
	s := Status{
		DisplayName:        acct.Name,
		Registered:         true,
		EmailVerified:      acct.EmailVerifiedAt != nil,
		StoreSetup:         acct.StoreSetupComplete,
		PlanSelected:       acct.PlanID != nil,
		DashboardCreated:   acct.DashboardCreated,
		PlanID:             acct.PlanID,
		TrialEndsAt:        acct.TrialEndsAt,
		SubscriptionEndsAt: acct.SubscriptionEndsAt,
	}
	if s.DisplayName == "" {
		s.DisplayName = acct.Email
	}

	done := 1 // registered
	for _, m := range []bool{s.EmailVerified, s.StoreSetup, s.PlanSelected, s.DashboardCreated} {
		if m {
			done++
		}
	}
	s.Completion = float64(done) / milestoneCount

	if sub != nil && plan != nil {
		s.Subscription = &SubscriptionInfo{
			PlanName:  plan.Name,
			Price:     plan.Price,
			Interval:  plan.Interval,
			StartsAt:  sub.StartsAt,
			EndsAt:    sub.EndsAt,
			AutoRenew: sub.AutoRenew,
		}
	}
	return s
}

// RedirectTarget computes where the SPA should send the account after
// login: superadmins go to the admin console, fully onboarded accounts to
// the store dashboard, everyone else to their next onboarding step.
func RedirectTarget(acct *model.Account) string {
	if acct.Role == model.RoleSuperadmin || acct.Role == model.RoleTechLead {
		return "/admin"
	}
	switch {
	case acct.EmailVerifiedAt == nil:
		return "/verify-email"
	case !acct.StoreSetupComplete:
		return "/onboarding/store"
	case acct.PlanID == nil:
		return "/onboarding/plan"
	case !acct.DashboardCreated:
		return "/onboarding/dashboard"
	}
	return "/dashboard"
}
