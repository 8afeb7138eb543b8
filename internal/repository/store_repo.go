package repository

import (
	"context"
	"time"

	"sellerhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository is the tenant resolver boundary: it maps an authenticated
// caller to a store row and answers existence checks for every analytics
// operation.
type StoreRepository interface {
	Create(ctx context.Context, s *model.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Store, error)
	Update(ctx context.Context, s *model.Store) error
	// ListExpiringPlans returns active stores whose plan expires in (now, until].
	ListExpiringPlans(ctx context.Context, until time.Time) ([]model.Store, error)
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepository(db *gorm.DB) StoreRepository { return &storeRepo{db: db} }

func (r *storeRepo) Create(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Where("active = true").First(&s, id).Error
	return &s, err
}

func (r *storeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Where("user_id = ? AND active = true", userID).First(&s).Error
	return &s, err
}

func (r *storeRepo) Update(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *storeRepo) ListExpiringPlans(ctx context.Context, until time.Time) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("active = true AND plan_expires_at IS NOT NULL AND plan_expires_at > now() AND plan_expires_at <= ?", until).
		Find(&stores).Error
	return stores, err
}
