package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SelectPlanRequest struct {
	PlanID uint `json:"planId" validate:"required,min=1"`
}

type SelectPlanResponse struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo"`
}

type UpdateSubscriptionEndRequest struct {
	EndsAt time.Time `json:"endsAt" validate:"required"`
}

type PlanResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Interval string          `json:"interval"`
}
