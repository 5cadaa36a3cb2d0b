package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is the single storefront owned by an account. Slug is globally
// unique and derived from the name with a numeric suffix on collision.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	Type      string    `gorm:"type:varchar(40);not null"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Locations []Location
	CreatedAt time.Time
}

// Location belongs to exactly one store. Exactly one location per store
// carries IsDefault = true.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Address   string
	Phone     string
	IsDefault bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}
