package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash       = "cash"
	PaymentGCash      = "gcash"
	PaymentCreditCard = "credit_card"
	PaymentOthers     = "others"
)

// Sale statuses. A sale only ever moves completed → voided; "refunded" is
// declared in the schema for forward compatibility but no flow sets it.
const (
	SaleCompleted = "completed"
	SaleVoided    = "voided"
	SaleRefunded  = "refunded"
)

// Sale is one register transaction, created atomically with all its items.
type Sale struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber     string    `gorm:"uniqueIndex;not null"` // SALE-YYYYMMDD-NNNN
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ChangeAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null;default:'cash'"`
	Status         string          `gorm:"type:varchar(20);not null;default:'completed';index"`
	CustomerName   *string
	Notes          *string
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	Items   []SaleItem `gorm:"foreignKey:SaleID"`
	Cashier *User      `gorm:"foreignKey:UserID"`
}

// SaleItem is one immutable line of a sale. ProductName and UnitPrice are
// snapshots taken at sale time so later catalog edits never rewrite history.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// SaleCounter backs daily sale numbering. One row per calendar day
// (Day = YYYYMMDD); Value is bumped atomically inside the sale transaction.
type SaleCounter struct {
	Day   string `gorm:"type:varchar(8);primaryKey"`
	Value int    `gorm:"not null"`
}
