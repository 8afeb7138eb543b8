package handler

import (
	"errors"
	"net/http"

	"sellerhub/internal/apierror"
	"sellerhub/internal/infra"
	"sellerhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// MediaHandler proxies product image uploads to the media sidecar through a
// circuit breaker, then attaches the resulting CDN URL to the product.
type MediaHandler struct {
	media    *infra.MediaClient
	breaker  *infra.Breaker
	products service.ProductService
}

func NewMediaHandler(media *infra.MediaClient, breaker *infra.Breaker, products service.ProductService) *MediaHandler {
	return &MediaHandler{media: media, breaker: breaker, products: products}
}

// UploadProductImage godoc
// @Summary  Upload a product image via the media sidecar
// @Tags     media
// @Accept   multipart/form-data
// @Produce  json
// @Param    id   path     string true "product id"
// @Param    file formData file   true "image file"
// @Success  200 {object} dto.ProductResponse
// @Router   /v1/products/{id}/image [post]
func (h *MediaHandler) UploadProductImage(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("file field is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("file exceeds the 10 MiB limit"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("could not read uploaded file"))
		return
	}
	defer file.Close()

	var uploaded *infra.MediaUploadResponse
	err = h.breaker.Execute(func() error {
		var upErr error
		uploaded, upErr = h.media.Upload(c.Request.Context(), fileHeader.Filename, file)
		return upErr
	})
	if err != nil {
		if errors.Is(err, infra.ErrBreakerOpen) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("media service temporarily unavailable"))
			return
		}
		log.Error().Err(err).Msg("media upload failed")
		c.JSON(http.StatusBadGateway, apierror.New("media upload failed"))
		return
	}

	resp, err := h.products.AttachImage(c.Request.Context(), storeID, productID, uploaded.URL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
