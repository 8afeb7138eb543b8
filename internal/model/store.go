package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant. Every product, sale, and review row is scoped by
// StoreID — analytics never crosses store boundaries.
type Store struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name          string    `gorm:"not null"`
	Description   *string
	LogoURL       *string
	Plan          string `gorm:"not null;default:'free'"` // free | pro
	PlanExpiresAt *time.Time
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Owner *User `gorm:"foreignKey:UserID"`
}
