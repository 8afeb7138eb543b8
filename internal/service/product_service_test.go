package service

import (
	"context"
	"testing"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (ProductService, *stubProductRepo, uuid.UUID) {
	products := newStubProductRepo()
	return NewProductService(products), products, uuid.New()
}

func TestCreateProductSetsStatusFromQuantity(t *testing.T) {
	svc, _, storeID := newProductFixture()

	resp, err := svc.Create(context.Background(), storeID, dto.CreateProductRequest{
		Name:          "Widget",
		PurchasePrice: decimal.RequireFromString("10"),
		SoldPrice:     decimal.RequireFromString("20"),
		Quantity:      0,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductOutOfStock, resp.Status)
}

func TestUpdateProductKeepsStatusConsistent(t *testing.T) {
	svc, _, storeID := newProductFixture()

	created, err := svc.Create(context.Background(), storeID, dto.CreateProductRequest{
		Name:          "Widget",
		PurchasePrice: decimal.RequireFromString("10"),
		SoldPrice:     decimal.RequireFromString("20"),
		Quantity:      0,
	})
	require.NoError(t, err)

	qty := 5
	updated, err := svc.Update(context.Background(), storeID, uuid.MustParse(created.ID), dto.UpdateProductRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductActive, updated.Status, "restocking flips out_of_stock back to active")
}

func TestProductTenantIsolation(t *testing.T) {
	svc, _, storeID := newProductFixture()

	created, err := svc.Create(context.Background(), storeID, dto.CreateProductRequest{
		Name:          "Widget",
		PurchasePrice: decimal.RequireFromString("10"),
		SoldPrice:     decimal.RequireFromString("20"),
		Quantity:      1,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), uuid.MustParse(created.ID))
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestArchiveHidesProductFromAnalyticsSource(t *testing.T) {
	svc, products, storeID := newProductFixture()

	created, err := svc.Create(context.Background(), storeID, dto.CreateProductRequest{
		Name:          "Widget",
		PurchasePrice: decimal.RequireFromString("10"),
		SoldPrice:     decimal.RequireFromString("20"),
		Quantity:      1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), storeID, uuid.MustParse(created.ID)))

	rows, err := products.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Empty(t, rows, "archived products drop out of the analytics record source")
}
