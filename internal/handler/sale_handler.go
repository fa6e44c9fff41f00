package handler

import (
	"net/http"

	"tindapos/internal/apierror"
	"tindapos/internal/dto"
	"tindapos/internal/middleware"
	"tindapos/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	sales service.SaleService
}

func NewSaleHandler(sales service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create godoc
// @Summary  Process a sale
// @Tags     sales
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateSaleRequest true "sale"
// @Success  201 {object} apierror.Result{data=dto.SaleResponse}
// @Failure  422 {object} apierror.APIError
// @Router   /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.sales.CreateSale(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK("sale completed", resp))
}

// Void godoc
// @Summary  Void a completed sale
// @Tags     sales
// @Security BearerAuth
// @Router   /sales/{id}/void [post]
func (h *SaleHandler) Void(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.VoidSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.sales.VoidSale(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("sale voided", resp))
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", resp))
}

func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary  Sales summary for a period
// @Tags     sales
// @Security BearerAuth
// @Param    period query string false "today | week | month"
// @Router   /sales/summary [get]
func (h *SaleHandler) Summary(c *gin.Context) {
	resp, err := h.sales.Summary(c.Request.Context(), c.DefaultQuery("period", "today"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", resp))
}
