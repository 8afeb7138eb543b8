package handler

import (
	"net/http"

	"sellerhub/internal/dto"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reviews.Create(c.Request.Context(), storeID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) ListRecent(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.reviews.ListRecent(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
