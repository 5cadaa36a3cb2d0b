package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Free-form role strings are
// rejected at the boundary (validator oneof tags mirror this list).
type Role string

const (
	RoleUser       Role = "user"
	RoleOwner      Role = "owner"
	RoleSuperadmin Role = "superadmin"
	RoleTechLead   Role = "tech lead"
	RoleDev        Role = "dev"
	RoleJuniorDev  Role = "junior dev"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleSuperadmin, RoleTechLead, RoleDev, RoleJuniorDev:
		return true
	}
	return false
}

// Account is the tenant identity plus its onboarding flags.
// Accounts are never hard-deleted.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'"`

	// Email verification. VerificationToken is present only while the
	// address is unverified (or pending re-verification after a change).
	EmailVerifiedAt   *time.Time
	VerificationToken *string `gorm:"index"`

	// Multi-factor (TOTP)
	MFASecret  *string
	MFAEnabled bool `gorm:"not null;default:false"`

	// Lockout bookkeeping. LoginAttempts resets to zero on successful
	// authentication; LockedUntil is nil when the account is not locked.
	LoginAttempts int `gorm:"not null;default:0"`
	LockedUntil   *time.Time

	// Onboarding progress
	PlanID             *uint
	Plan               *Plan
	TrialEndsAt        *time.Time
	SubscriptionEndsAt *time.Time
	StoreSetupComplete bool `gorm:"not null;default:false"`
	DashboardCreated   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
