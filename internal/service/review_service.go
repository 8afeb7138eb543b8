package service

import (
	"context"
	"fmt"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/google/uuid"
)

const recentReviewLimit = 20

type ReviewService interface {
	Create(ctx context.Context, storeID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListRecent(ctx context.Context, storeID uuid.UUID) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
}

func NewReviewService(reviews repository.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

func (s *reviewService) Create(ctx context.Context, storeID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	rv := &model.Review{
		StoreID:  storeID,
		Reviewer: req.Reviewer,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if req.ProductID != nil {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		rv.ProductID = &pid
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("review: create: %w", err)
	}
	return reviewToResponse(rv), nil
}

func (s *reviewService) ListRecent(ctx context.Context, storeID uuid.UUID) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviews.ListRecent(ctx, storeID, recentReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("review: list: %w", err)
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *reviewToResponse(&reviews[i]))
	}
	return out, nil
}

func reviewToResponse(rv *model.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        rv.ID.String(),
		Reviewer:  rv.Reviewer,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if rv.ProductID != nil {
		pid := rv.ProductID.String()
		resp.ProductID = &pid
	}
	return resp
}
