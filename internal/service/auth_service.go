package service

import (
	"context"
	"errors"
	"time"

	"sellerhub/internal/config"
	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	users  repository.UserRepository
	stores repository.StoreRepository
	cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, stores repository.StoreRepository, cfg *config.Config) AuthService {
	return &authService{users: users, stores: stores, cfg: cfg}
}

// Register creates a supplier account together with its store. Registration
// and tenant creation are one operation: a supplier without a store cannot
// use any endpoint.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         "supplier",
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	store := &model.Store{
		UserID: user.ID,
		Name:   req.StoreName,
		Plan:   "free",
		Active: true,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	return s.issueTokens(user, store)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	store, err := s.stores.FindByUserID(ctx, user.ID)
	if err != nil {
		if user.Role != "admin" {
			return nil, ErrStoreNotFound
		}
		store = nil // admins have no store of their own
	}
	return s.issueTokens(user, store)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}
	store, err := s.stores.FindByUserID(ctx, user.ID)
	if err != nil {
		if user.Role != "admin" {
			return nil, ErrStoreNotFound
		}
		store = nil
	}
	return s.issueTokens(user, store)
}

func (s *authService) issueTokens(user *model.User, store *model.Store) (*dto.LoginResponse, error) {
	access, err := s.generateToken(user, store, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, store, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}
	if store != nil {
		resp.User.StoreID = store.ID.String()
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.User, store *model.Store, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	if store != nil {
		claims["store_id"] = store.ID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
