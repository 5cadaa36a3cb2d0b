package model

import (
	"github.com/shopspring/decimal"
)

// FreePlanID is the distinguished free demo plan. Accounts on it are
// exempt from the subscription-expiry check in the authentication gate.
const FreePlanID uint = 1

// Billing intervals.
const (
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Plan is a subscription tier. Rows are seeded at migration time and
// referenced by accounts and subscriptions.
type Plan struct {
	ID       uint            `gorm:"primaryKey"`
	Name     string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Interval string          `gorm:"type:varchar(10);not null"` // month | year
}
