package service

import (
	"context"
	"testing"
	"time"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	products *stubProductRepo
	sales    *stubSaleRepo
	svc      SaleService
	storeID  uuid.UUID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	products := newStubProductRepo()
	sales := newStubSaleRepo()
	return &saleFixture{
		products: products,
		sales:    sales,
		svc:      NewSaleService(sales, products),
		storeID:  uuid.New(),
	}
}

func (f *saleFixture) addProduct(t *testing.T, purchase, sold string, qty int) uuid.UUID {
	t.Helper()
	p := &model.Product{
		StoreID:       f.storeID,
		Name:          "Widget",
		PurchasePrice: decimal.RequireFromString(purchase),
		SoldPrice:     decimal.RequireFromString(sold),
		Quantity:      qty,
		Status:        model.ProductActive,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p.ID
}

func TestRecordSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 5)

	resp, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	eq(t, "20", resp.UnitPrice, "unit price defaults to the product's sold price")
	eq(t, "40", resp.TotalAmount, "total_amount = quantity × unit price")
	eq(t, "20", resp.Profit, "profit = (unit − purchase) × quantity")

	p, err := f.products.FindByID(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, model.ProductActive, p.Status)
}

func TestRecordSaleCustomUnitPrice(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 5)

	discounted := decimal.RequireFromString("15")
	resp, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  1,
		UnitPrice: &discounted,
	})
	require.NoError(t, err)
	eq(t, "15", resp.TotalAmount, "discounted total")
	eq(t, "5", resp.Profit, "profit against the purchase price")
}

func TestRecordSaleDrainsStockAndFlipsStatus(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 2)

	_, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	p, err := f.products.FindByID(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, model.ProductOutOfStock, p.Status)
}

func TestRecordSaleExplicitDate(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 5)

	resp, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  1,
		SaleDate:  "2026-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", resp.SaleDate)
}

func TestRecordSaleTenantIsolation(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 5)

	_, err := f.svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrProductNotFound, "a foreign product behaves exactly like a missing one")
}

func TestRecordSaleRejectsArchivedProduct(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 5)
	require.NoError(t, f.products.Archive(context.Background(), pid))

	_, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  1,
	})
	require.Error(t, err)
}

func TestCorrectSalePreservesPurchasePriceAtSale(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 10)

	resp, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	saleID := uuid.MustParse(resp.ID)

	// Catalog price changes after the sale; the correction must still use the
	// purchase price captured at sale time.
	p, err := f.products.FindByID(context.Background(), pid)
	require.NoError(t, err)
	p.PurchasePrice = decimal.RequireFromString("99")
	require.NoError(t, f.products.Update(context.Background(), p))

	newQty := 3
	corrected, err := f.svc.Correct(context.Background(), f.storeID, saleID, dto.CorrectSaleRequest{
		Quantity: &newQty,
	})
	require.NoError(t, err)

	eq(t, "60", corrected.TotalAmount, "recomputed total")
	eq(t, "30", corrected.Profit, "profit still uses the original purchase price of 10")

	p, err = f.products.FindByID(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity, "one extra unit deducted by the correction")
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 2)

	resp, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
		ProductID: pid.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), f.storeID, uuid.MustParse(resp.ID)))

	p, err := f.products.FindByID(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)
	assert.Equal(t, model.ProductActive, p.Status, "restored stock flips the product back to active")
}

func TestListSalesWindow(t *testing.T) {
	f := newSaleFixture(t)
	pid := f.addProduct(t, "10", "20", 50)

	for _, daysAgo := range []int{1, 10, 40} {
		_, err := f.svc.Record(context.Background(), f.storeID, dto.RecordSaleRequest{
			ProductID: pid.String(),
			Quantity:  1,
			SaleDate:  time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
		})
		require.NoError(t, err)
	}

	list, err := f.svc.List(context.Background(), f.storeID, dto.SaleFilter{
		From: time.Now().AddDate(0, 0, -14).Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
}
