package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription is the time-bounded plan grant for one account. The unique
// index on AccountID enforces at most one active subscription per account:
// selecting a new plan updates the existing row (upsert), never inserts a
// second one.
type Subscription struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PlanID     uint            `gorm:"not null"`
	Plan       *Plan
	StartsAt   time.Time       `gorm:"not null"`
	EndsAt     time.Time       `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AutoRenew  bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
