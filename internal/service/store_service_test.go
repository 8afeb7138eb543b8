package service

import (
	"context"
	"testing"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreProfileRoundTrip(t *testing.T) {
	stores := newStubStoreRepo()
	store := &model.Store{UserID: uuid.New(), Name: "Old Name", Plan: "free"}
	require.NoError(t, stores.Create(context.Background(), store))

	svc := NewStoreService(stores)

	desc := "Hand-picked hardware"
	updated, err := svc.UpdateProfile(context.Background(), store.ID, dto.UpdateStoreRequest{
		Name:        "New Name",
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	got, err := svc.GetProfile(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestStoreProfileNotFound(t *testing.T) {
	svc := NewStoreService(newStubStoreRepo())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrStoreNotFound)
}

func TestReviewCreateAndList(t *testing.T) {
	reviews := newStubReviewRepo()
	svc := NewReviewService(reviews)
	storeID := uuid.New()

	comment := "fast shipping"
	created, err := svc.Create(context.Background(), storeID, dto.CreateReviewRequest{
		Reviewer: "Grace",
		Rating:   5,
		Comment:  &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)

	list, err := svc.ListRecent(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].Reviewer)
}
