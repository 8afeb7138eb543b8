package handler

import (
	"net/http"
	"strconv"

	"sellerhub/internal/apierror"
	"sellerhub/internal/dto"
	"sellerhub/internal/middleware"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// tenant resolves the caller's store or writes the 403 itself.
func tenant(c *gin.Context) (uuid.UUID, bool) {
	storeID, ok := middleware.StoreID(c)
	if !ok {
		c.JSON(http.StatusForbidden, apierror.New("no store associated with this account"))
		return uuid.Nil, false
	}
	return storeID, true
}

// pathID parses a uuid path param or writes the 400 itself.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary  Create a product in the caller's catalog
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    request body dto.CreateProductRequest true "product data"
// @Success  201 {object} dto.ProductResponse
// @Router   /v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), storeID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.Get(c.Request.Context(), storeID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary  List the caller's catalog with optional filters
// @Tags     products
// @Produce  json
// @Param    category query string false "filter by category"
// @Param    status   query string false "filter by status"
// @Param    name     query string false "substring match on name"
// @Param    page     query int    false "page number"
// @Param    limit    query int    false "page size"
// @Success  200 {object} dto.ProductListResponse
// @Router   /v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.ProductFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Name:     c.Query("name"),
		Page:     page,
		Limit:    limit,
	}
	resp, err := h.products.List(c.Request.Context(), storeID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Update(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), storeID, productID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Archive soft-deletes: the product drops out of listings and analytics but
// its sale history stays intact.
func (h *ProductHandler) Archive(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Archive(c.Request.Context(), storeID, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
