package handler

import (
	"net/http"

	"sellerhub/internal/apierror"
	"sellerhub/internal/dto"
	"sellerhub/internal/middleware"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	stores service.StoreService
}

func NewStoreHandler(stores service.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// GetProfile returns the caller's own store. The tenant always comes from the
// token, never from the path.
func (h *StoreHandler) GetProfile(c *gin.Context) {
	storeID, ok := middleware.StoreID(c)
	if !ok {
		c.JSON(http.StatusForbidden, apierror.New("no store associated with this account"))
		return
	}
	resp, err := h.stores.GetProfile(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StoreHandler) UpdateProfile(c *gin.Context) {
	storeID, ok := middleware.StoreID(c)
	if !ok {
		c.JSON(http.StatusForbidden, apierror.New("no store associated with this account"))
		return
	}
	var req dto.UpdateStoreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stores.UpdateProfile(c.Request.Context(), storeID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
