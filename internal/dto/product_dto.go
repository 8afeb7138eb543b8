package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=2"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	SoldPrice     decimal.Decimal `json:"sold_price" validate:"min=0"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	ImageURL      *string         `json:"image_url" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=2"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,min=0"`
	SoldPrice     *decimal.Decimal `json:"sold_price" validate:"omitempty,min=0"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url"`
}

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SoldPrice     decimal.Decimal `json:"sold_price"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	ImageURL      *string         `json:"image_url"`
	CreatedAt     string          `json:"created_at"`
}

type ProductFilter struct {
	Category string
	Status   string
	Name     string
	Page     int
	Limit    int
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
