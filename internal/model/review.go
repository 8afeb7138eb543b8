package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is buyer feedback on a store. Only consumed as an activity feed
// input — the analytics core never aggregates ratings.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	Reviewer  string     `gorm:"not null"`
	Rating    int        `gorm:"not null"` // 1..5
	Comment   *string
	CreatedAt time.Time
}
