package service

import (
	"context"
	"errors"
	"fmt"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, storeID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, storeID, productID uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, storeID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, storeID, productID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Archive(ctx context.Context, storeID, productID uuid.UUID) error
	AttachImage(ctx context.Context, storeID, productID uuid.UUID, url string) (*dto.ProductResponse, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

// statusForQuantity keeps Status consistent with Quantity; archived products
// are left alone.
func statusForQuantity(current string, quantity int) string {
	if current == model.ProductArchived {
		return current
	}
	if quantity == 0 {
		return model.ProductOutOfStock
	}
	return model.ProductActive
}

func (s *productService) Create(ctx context.Context, storeID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		StoreID:       storeID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SoldPrice:     req.SoldPrice,
		Quantity:      req.Quantity,
		Status:        statusForQuantity(model.ProductActive, req.Quantity),
		ImageURL:      req.ImageURL,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("product: create: %w", err)
	}
	return productToResponse(p), nil
}

// findOwned fetches a product and enforces tenant isolation: a product id
// from another store behaves exactly like a missing one.
func (s *productService) findOwned(ctx context.Context, storeID, productID uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product: find: %w", err)
	}
	if p.StoreID != storeID {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, storeID, productID uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.findOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, storeID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, storeID, filter)
	if err != nil {
		return nil, fmt.Errorf("product: list: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, storeID, productID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.findOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}
	if req.SoldPrice != nil {
		p.SoldPrice = *req.SoldPrice
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	p.Status = statusForQuantity(p.Status, p.Quantity)

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("product: update: %w", err)
	}
	return productToResponse(p), nil
}

func (s *productService) Archive(ctx context.Context, storeID, productID uuid.UUID) error {
	if _, err := s.findOwned(ctx, storeID, productID); err != nil {
		return err
	}
	return s.products.Archive(ctx, productID)
}

func (s *productService) AttachImage(ctx context.Context, storeID, productID uuid.UUID, url string) (*dto.ProductResponse, error) {
	p, err := s.findOwned(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	p.ImageURL = &url
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("product: update: %w", err)
	}
	return productToResponse(p), nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		PurchasePrice: p.PurchasePrice,
		SoldPrice:     p.SoldPrice,
		Quantity:      p.Quantity,
		Status:        p.Status,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
