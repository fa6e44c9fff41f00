package handler

import (
	"net/http"
	"strconv"

	"tindapos/internal/apierror"
	"tindapos/internal/dto"
	"tindapos/internal/middleware"
	"tindapos/internal/repository"
	"tindapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products  service.ProductService
	inventory service.InventoryService
}

func NewProductHandler(products service.ProductService, inventory service.InventoryService) *ProductHandler {
	return &ProductHandler{products: products, inventory: inventory}
}

// List godoc
// @Summary  List products
// @Tags     products
// @Security BearerAuth
// @Param    search query string false "name or SKU substring"
// @Param    low_stock query bool false "only products at/below threshold"
// @Router   /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", resp))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.products.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK("product created", resp))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.products.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("product updated", resp))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Deactivate(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("product deactivated", nil))
}

// Restock godoc
// @Summary  Adjust stock for a product
// @Tags     products
// @Security BearerAuth
// @Router   /products/{id}/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.inventory.AdjustStock(c.Request.Context(), id, middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("stock adjusted", resp))
}

// History returns the movement ledger for one product, newest first.
func (h *ProductHandler) History(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.inventory.ProductHistory(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", entries))
}

// Movements lists the full stock ledger across products.
func (h *ProductHandler) Movements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.inventory.ListMovements(c.Request.Context(), repository.InventoryLogFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Categories ──────────────────────────────────────────────────────────────

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.products.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OK("category created", category))
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK("", categories))
}
