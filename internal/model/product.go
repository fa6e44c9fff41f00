package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. StockQuantity is a cached projection of the
// inventory ledger: every change goes through an InventoryLog entry, and the
// field must always equal the quantity_after of the product's latest entry.
// Products are soft-deleted (IsActive=false) so historical sale items and
// ledger entries stay resolvable.
type Product struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name              string    `gorm:"index;not null"`
	SKU               string    `gorm:"uniqueIndex;not null"`
	Description       *string
	CostPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	Unit              string          `gorm:"not null;default:'pc'"`
	IsActive          bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
