package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /api/products.
type ProductFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Name              string          `json:"name"                validate:"required,max=255"`
	SKU               string          `json:"sku"                 validate:"required,max=64"`
	CategoryID        string          `json:"category_id"         validate:"required,uuid"`
	Description       *string         `json:"description"`
	CostPrice         decimal.Decimal `json:"cost_price"          validate:"min=0"`
	SellingPrice      decimal.Decimal `json:"selling_price"       validate:"required,min=0"`
	StockQuantity     int             `json:"stock_quantity"      validate:"min=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"min=0"`
	Unit              string          `json:"unit"`
}

// UpdateProductRequest applies partial catalog edits. Stock is never edited
// here; all stock changes go through the inventory ledger.
type UpdateProductRequest struct {
	Name              *string          `json:"name"                validate:"omitempty,max=255"`
	Description       *string          `json:"description"`
	CategoryID        *string          `json:"category_id"         validate:"omitempty,uuid"`
	CostPrice         *decimal.Decimal `json:"cost_price"          validate:"omitempty,min=0"`
	SellingPrice      *decimal.Decimal `json:"selling_price"       validate:"omitempty,min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,min=0"`
	Unit              *string          `json:"unit"`
}

type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	CategoryID        string          `json:"category_id"`
	Category          string          `json:"category,omitempty"`
	Description       *string         `json:"description,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Unit              string          `json:"unit"`
	IsActive          bool            `json:"is_active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse backs the public GET /api/price/{sku} endpoint.
type PriceCheckResponse struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	InStock      bool            `json:"in_stock"`
}
