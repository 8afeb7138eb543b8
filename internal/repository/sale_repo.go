package repository

import (
	"context"
	"time"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository defines the data access contract for sale events.
// ListByStore is the analytics record source for sales: nil bounds mean
// unrestricted history; bounds are inclusive and day-granular.
type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, storeID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, from, to *time.Time) ([]model.Sale, error)
	Update(ctx context.Context, s *model.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, storeID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("store_id = ?", storeID)
	if filter.From != "" {
		q = q.Where("sale_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("sale_date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").
		Order("sale_date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListByStore(ctx context.Context, storeID uuid.UUID, from, to *time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if from != nil {
		q = q.Where("sale_date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		q = q.Where("sale_date <= ?", to.Format("2006-01-02"))
	}
	err := q.Order("sale_date ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Update(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, id).Error
}
