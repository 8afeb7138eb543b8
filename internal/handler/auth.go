package handler

import (
	"errors"
	"net/http"

	"sellerhub/internal/apierror"
	"sellerhub/internal/dto"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary  Register a supplier account and its store
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body dto.RegisterRequest true "registration data"
// @Success  201 {object} dto.LoginResponse
// @Router   /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary  Exchange credentials for a token pair
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body dto.LoginRequest true "credentials"
// @Success  200 {object} dto.LoginResponse
// @Router   /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) || errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary  Exchange a refresh token for a fresh token pair
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body dto.RefreshRequest true "refresh token"
// @Success  200 {object} dto.LoginResponse
// @Router   /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("refresh token invalid or expired"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
