package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Record(ctx context.Context, storeID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	Correct(ctx context.Context, storeID, saleID uuid.UUID, req dto.CorrectSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, storeID, saleID uuid.UUID) error
	List(ctx context.Context, storeID uuid.UUID, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
}

func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository) SaleService {
	return &saleService{sales: sales, products: products}
}

// Record creates an immutable sale event. total_amount = quantity × unit
// price and profit = (unit price − purchase price) × quantity are computed
// here, capturing the purchase price at time of sale. Stock is decremented
// and the product status kept consistent.
func (s *saleService) Record(ctx context.Context, storeID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("sale: find product: %w", err)
	}
	if product.StoreID != storeID {
		return nil, ErrProductNotFound
	}
	if product.Status == model.ProductArchived {
		return nil, errors.New("product is archived and cannot be sold")
	}

	unitPrice := product.SoldPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	saleDate := startOfDay(time.Now())
	if req.SaleDate != "" {
		d, err := time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("invalid sale_date: %w", err)
		}
		saleDate = d
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	sale := &model.Sale{
		StoreID:     storeID,
		ProductID:   product.ID,
		Quantity:    req.Quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(qty),
		Profit:      unitPrice.Sub(product.PurchasePrice).Mul(qty),
		SaleDate:    saleDate,
		Channel:     req.Channel,
		Notes:       req.Notes,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("sale: create: %w", err)
	}

	if err := s.products.AdjustQuantity(ctx, product.ID, -req.Quantity); err != nil {
		return nil, fmt.Errorf("sale: adjust stock: %w", err)
	}
	if err := s.syncStatus(ctx, product.ID); err != nil {
		return nil, err
	}

	resp := saleToResponse(sale)
	resp.ProductName = product.Name
	return resp, nil
}

// Correct is the administrative exception to sale immutability: quantity and
// price edits recompute total_amount and profit from the purchase price
// captured at sale time, and the stock delta is re-applied.
func (s *saleService) Correct(ctx context.Context, storeID, saleID uuid.UUID, req dto.CorrectSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.findOwned(ctx, storeID, saleID)
	if err != nil {
		return nil, err
	}

	// total − profit preserves purchase_price_at_sale × original_quantity.
	purchaseAtSale := decimal.Zero
	if sale.Quantity > 0 {
		purchaseAtSale = sale.TotalAmount.Sub(sale.Profit).Div(decimal.NewFromInt(int64(sale.Quantity)))
	}

	oldQuantity := sale.Quantity
	if req.Quantity != nil {
		sale.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		sale.UnitPrice = *req.UnitPrice
	}
	if req.Notes != nil {
		sale.Notes = req.Notes
	}

	qty := decimal.NewFromInt(int64(sale.Quantity))
	sale.TotalAmount = sale.UnitPrice.Mul(qty)
	sale.Profit = sale.UnitPrice.Sub(purchaseAtSale).Mul(qty)

	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("sale: update: %w", err)
	}

	if delta := oldQuantity - sale.Quantity; delta != 0 {
		if err := s.products.AdjustQuantity(ctx, sale.ProductID, delta); err != nil {
			return nil, fmt.Errorf("sale: adjust stock: %w", err)
		}
		if err := s.syncStatus(ctx, sale.ProductID); err != nil {
			return nil, err
		}
	}
	return saleToResponse(sale), nil
}

// Delete removes a sale event and restores its quantity to stock.
func (s *saleService) Delete(ctx context.Context, storeID, saleID uuid.UUID) error {
	sale, err := s.findOwned(ctx, storeID, saleID)
	if err != nil {
		return err
	}
	if err := s.sales.Delete(ctx, saleID); err != nil {
		return fmt.Errorf("sale: delete: %w", err)
	}
	if err := s.products.AdjustQuantity(ctx, sale.ProductID, sale.Quantity); err != nil {
		return fmt.Errorf("sale: adjust stock: %w", err)
	}
	return s.syncStatus(ctx, sale.ProductID)
}

func (s *saleService) List(ctx context.Context, storeID uuid.UUID, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, storeID, filter)
	if err != nil {
		return nil, fmt.Errorf("sale: list: %w", err)
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp := saleToResponse(&sales[i])
		if sales[i].Product != nil {
			resp.ProductName = sales[i].Product.Name
		}
		items = append(items, *resp)
	}
	return &dto.SaleListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *saleService) findOwned(ctx context.Context, storeID, saleID uuid.UUID) (*model.Sale, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("sale: find: %w", err)
	}
	if sale.StoreID != storeID {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *saleService) syncStatus(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("sale: reload product: %w", err)
	}
	status := statusForQuantity(product.Status, product.Quantity)
	if status != product.Status {
		product.Status = status
		if err := s.products.Update(ctx, product); err != nil {
			return fmt.Errorf("sale: sync status: %w", err)
		}
	}
	return nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          sale.ID.String(),
		ProductID:   sale.ProductID.String(),
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		TotalAmount: sale.TotalAmount,
		Profit:      sale.Profit,
		SaleDate:    sale.SaleDate.Format("2006-01-02"),
		Channel:     sale.Channel,
		Notes:       sale.Notes,
	}
}
