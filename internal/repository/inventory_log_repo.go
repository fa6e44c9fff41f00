package repository

import (
	"context"

	"tindapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLogFilter narrows ledger reads.
type InventoryLogFilter struct {
	ProductID string
	Type      string
	Page      int
	Limit     int
}

// InventoryLogRepository persists the append-only stock movement ledger.
// There is deliberately no update or delete: entries are immutable history.
type InventoryLogRepository interface {
	CreateTx(tx *gorm.DB, entry *model.InventoryLog) error
	List(ctx context.Context, filter InventoryLogFilter) ([]model.InventoryLog, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryLog, error)
}

type inventoryLogRepo struct{ db *gorm.DB }

func NewInventoryLogRepository(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db: db}
}

func (r *inventoryLogRepo) CreateTx(tx *gorm.DB, entry *model.InventoryLog) error {
	return tx.Create(entry).Error
}

func (r *inventoryLogRepo) List(ctx context.Context, filter InventoryLogFilter) ([]model.InventoryLog, int64, error) {
	var entries []model.InventoryLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryLog{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&entries).Error
	return entries, total, err
}

func (r *inventoryLogRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
