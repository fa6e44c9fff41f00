package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementRestock    = "restock"
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementDamage     = "damage"
	MovementReturn     = "return"
)

// InventoryLog is one immutable entry in a product's stock ledger.
// Entries are never updated or deleted; for a given product, ordered by
// creation, entry[i].QuantityAfter == entry[i+1].QuantityBefore, and the
// product's cached StockQuantity equals the latest QuantityAfter.
type InventoryLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	Type           string    `gorm:"type:varchar(20);not null"`
	QuantityBefore int       `gorm:"not null"`
	QuantityChange int       `gorm:"not null"` // positive = in, negative = out
	QuantityAfter  int       `gorm:"not null"`
	Reason         *string
	// SaleID links movements of type sale/return back to the originating sale.
	SaleID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
