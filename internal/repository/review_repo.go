package repository

import (
	"context"

	"sellerhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository serves the review aux-event stream of the activity feed.
type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]model.Review, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
