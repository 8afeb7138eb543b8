package dto

import "github.com/shopspring/decimal"

type RecordSaleRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"` // defaults to the product's sold price
	SaleDate  string           `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
	Channel   *string          `json:"channel"`
	Notes     *string          `json:"notes"`
}

// CorrectSaleRequest is the administrative correction: quantity/price edits
// recompute total_amount and profit.
type CorrectSaleRequest struct {
	Quantity  *int             `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	Notes     *string          `json:"notes"`
}

type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Profit      decimal.Decimal `json:"profit"`
	SaleDate    string          `json:"sale_date"` // YYYY-MM-DD
	Channel     *string         `json:"channel"`
	Notes       *string         `json:"notes"`
}

type SaleFilter struct {
	From  string // YYYY-MM-DD, inclusive
	To    string // YYYY-MM-DD, inclusive
	Page  int
	Limit int
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
