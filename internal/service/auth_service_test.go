package service

import (
	"context"
	"testing"

	"sellerhub/internal/config"
	"sellerhub/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubUserRepo, *stubStoreRepo) {
	users := newStubUserRepo()
	stores := newStubStoreRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, stores, cfg), users, stores
}

func TestRegisterCreatesUserAndStore(t *testing.T) {
	svc, users, stores := newAuthFixture()

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     "ada@example.com",
		Name:      "Ada",
		Password:  "correct-horse",
		StoreName: "Ada's Parts",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "supplier", resp.User.Role)
	assert.NotEmpty(t, resp.User.StoreID, "registration creates the store in the same operation")

	u, err := users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", u.PasswordHash, "password must be hashed")

	_, err = stores.FindByUserID(context.Background(), u.ID)
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := dto.RegisterRequest{Email: "ada@example.com", Name: "Ada", Password: "correct-horse", StoreName: "Shop"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "ada@example.com", Name: "Ada", Password: "correct-horse", StoreName: "Shop",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginBadPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "ada@example.com", Name: "Ada", Password: "correct-horse", StoreName: "Shop",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "ada@example.com", Name: "Ada", Password: "correct-horse", StoreName: "Shop",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, reg.User.StoreID, resp.User.StoreID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
}
