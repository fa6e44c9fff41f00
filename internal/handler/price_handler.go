package handler

import (
	"net/http"

	"tindapos/internal/apierror"
	"tindapos/internal/service"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	products service.ProductService
}

func NewPriceHandler(products service.ProductService) *PriceHandler {
	return &PriceHandler{products: products}
}

// Check godoc
// @Summary  Public price lookup by SKU
// @Tags     public
// @Param    sku path string true "product SKU"
// @Success  200 {object} apierror.Result{data=dto.PriceCheckResponse}
// @Failure  404 {object} apierror.APIError
// @Router   /price/{sku} [get]
func (h *PriceHandler) Check(c *gin.Context) {
	resp, err := h.products.PriceBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", resp))
}
