package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product status values. Status is kept consistent with Quantity by the
// service layer: quantity 0 flips an active product to out_of_stock and back.
const (
	ProductActive     = "active"
	ProductOutOfStock = "out_of_stock"
	ProductArchived   = "archived"
)

// Product is a catalog entry owned by a Store. PurchasePrice is the supplier
// cost, SoldPrice the listing price; both are non-negative.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	Category      *string
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SoldPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity      int             `gorm:"not null;default:0"`
	Status        string          `gorm:"not null;default:'active'"`
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}
