package dto

// AdjustStockRequest drives POST /api/products/{id}/restock.
// Quantity is signed: positive restocks, negative removes (damage, shrinkage).
type AdjustStockRequest struct {
	Type     string  `json:"type"     validate:"required,oneof=restock adjustment damage return"`
	Quantity int     `json:"quantity" validate:"required"`
	Reason   *string `json:"reason"`
}

type AdjustStockResponse struct {
	StockQuantity int `json:"stock_quantity"`
}

// MovementResponse is one ledger entry as exposed to clients.
type MovementResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name,omitempty"`
	Type           string  `json:"type"`
	QuantityBefore int     `json:"quantity_before"`
	QuantityChange int     `json:"quantity_change"`
	QuantityAfter  int     `json:"quantity_after"`
	Reason         *string `json:"reason,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
