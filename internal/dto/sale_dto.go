package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
}

type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method"  validate:"required,oneof=cash gcash credit_card others"`
	AmountTendered decimal.Decimal   `json:"amount_tendered" validate:"min=0"`
	CustomerName   *string           `json:"customer_name"`
	// CustomerEmail is optional; when present, the receipt worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
	Notes         *string `json:"notes"`
}

type VoidSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// SaleFilter is bound from the query string of GET /api/sales.
type SaleFilter struct {
	DateFrom  string `form:"date_from"` // YYYY-MM-DD
	DateTo    string `form:"date_to"`
	Status    string `form:"status"` // completed | voided | all
	CashierID string `form:"cashier_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	CashierID      string             `json:"cashier_id"`
	CashierName    string             `json:"cashier_name,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	ChangeAmount   decimal.Decimal    `json:"change_amount"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	CustomerName   *string            `json:"customer_name,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	CreatedAt      string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// TopProduct is one row of the summary's best-seller ranking.
type TopProduct struct {
	ProductName  string          `json:"product_name"`
	TotalQty     int64           `json:"total_qty"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SaleSummaryResponse struct {
	Period       string          `json:"period"` // today | week | month
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageSale  decimal.Decimal `json:"average_sale"`
	TopProducts  []TopProduct    `json:"top_products"`
}
