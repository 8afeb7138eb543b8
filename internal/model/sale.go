package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records one completed sale event. TotalAmount and Profit are computed
// at creation time from the product's prices and are recomputed on
// administrative correction — they capture the purchase price at time of
// sale, so later catalog price edits do not rewrite history.
//
// SaleDate is day-granular (type date); CreatedAt keeps the exact instant for
// the hourly trend variant.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Profit      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate    time.Time       `gorm:"type:date;index;not null"`
	Channel     *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
