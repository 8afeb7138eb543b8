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

type StoreService interface {
	GetProfile(ctx context.Context, storeID uuid.UUID) (*dto.StoreResponse, error)
	UpdateProfile(ctx context.Context, storeID uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error)
}

type storeService struct {
	stores repository.StoreRepository
}

func NewStoreService(stores repository.StoreRepository) StoreService {
	return &storeService{stores: stores}
}

func (s *storeService) GetProfile(ctx context.Context, storeID uuid.UUID) (*dto.StoreResponse, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("store: find: %w", err)
	}
	return storeToResponse(store), nil
}

func (s *storeService) UpdateProfile(ctx context.Context, storeID uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("store: find: %w", err)
	}

	if req.Name != "" {
		store.Name = req.Name
	}
	if req.Description != nil {
		store.Description = req.Description
	}
	if req.LogoURL != nil {
		store.LogoURL = req.LogoURL
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("store: update: %w", err)
	}
	return storeToResponse(store), nil
}

func storeToResponse(st *model.Store) *dto.StoreResponse {
	resp := &dto.StoreResponse{
		ID:          st.ID.String(),
		Name:        st.Name,
		Description: st.Description,
		LogoURL:     st.LogoURL,
		Plan:        st.Plan,
		CreatedAt:   st.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if st.PlanExpiresAt != nil {
		d := st.PlanExpiresAt.Format("2006-01-02")
		resp.PlanExpiresAt = &d
	}
	return resp
}
