package handler

import (
	"net/http"
	"strconv"

	"sellerhub/internal/dto"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	sales service.SaleService
}

func NewSaleHandler(sales service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Record godoc
// @Summary  Record a sale event
// @Tags     sales
// @Accept   json
// @Produce  json
// @Param    request body dto.RecordSaleRequest true "sale data"
// @Success  201 {object} dto.SaleResponse
// @Router   /v1/sales [post]
func (h *SaleHandler) Record(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.Record(c.Request.Context(), storeID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) List(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.SaleFilter{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Page:  page,
		Limit: limit,
	}
	resp, err := h.sales.List(c.Request.Context(), storeID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Correct applies an administrative correction to a recorded sale,
// recomputing total_amount and profit.
func (h *SaleHandler) Correct(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	saleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CorrectSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.Correct(c.Request.Context(), storeID, saleID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a sale event and restores its quantity to stock.
func (h *SaleHandler) Delete(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	saleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), storeID, saleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
