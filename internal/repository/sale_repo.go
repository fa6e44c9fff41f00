package repository

import (
	"context"
	"time"

	"tindapos/internal/dto"
	"tindapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryRow aggregates completed sales over a period.
type SummaryRow struct {
	TotalSales   int64
	TotalRevenue decimal.Decimal
}

// TopProductRow is one best-seller ranking row.
type TopProductRow struct {
	ProductName  string
	TotalQty     int64
	TotalRevenue decimal.Decimal
}

type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	Summary(ctx context.Context, from, to time.Time) (*SummaryRow, []TopProductRow, error)

	// Transactional writes; callers pass the tx handle.
	CreateTx(tx *gorm.DB, sale *model.Sale) error

	// MarkVoidedTx flips a sale to voided only if it is still completed,
	// and reports whether the flip happened. The status guard lives in the
	// UPDATE itself so two concurrent voids cannot both win.
	MarkVoidedTx(tx *gorm.DB, id uuid.UUID, notes string) (bool, error)

	// NextSaleSeqTx bumps and returns the per-day counter used to build sale
	// numbers. The upsert is atomic, so two concurrent sales on the same day
	// can never observe the same sequence value.
	NextSaleSeqTx(tx *gorm.DB, day string) (int, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Cashier").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CashierID != "" {
		q = q.Where("user_id = ?", filter.CashierID)
	}
	if filter.DateFrom != "" {
		q = q.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		// inclusive upper bound: push to end of day
		q = q.Where("created_at < (?::date + interval '1 day')", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Cashier").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) Summary(ctx context.Context, from, to time.Time) (*SummaryRow, []TopProductRow, error) {
	var row SummaryRow
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COUNT(*) AS total_sales, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?", model.SaleCompleted, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, nil, err
	}

	var top []TopProductRow
	err = r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select("sale_items.product_name, SUM(sale_items.quantity) AS total_qty, SUM(sale_items.subtotal) AS total_revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.status = ? AND sales.created_at >= ? AND sales.created_at < ?", model.SaleCompleted, from, to).
		Group("sale_items.product_name").
		Order("total_qty DESC").
		Limit(5).
		Scan(&top).Error
	return &row, top, err
}

func (r *saleRepo) CreateTx(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) MarkVoidedTx(tx *gorm.DB, id uuid.UUID, notes string) (bool, error) {
	res := tx.Model(&model.Sale{}).
		Where("id = ? AND status = ?", id, model.SaleCompleted).
		Updates(map[string]interface{}{"status": model.SaleVoided, "notes": notes})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *saleRepo) NextSaleSeqTx(tx *gorm.DB, day string) (int, error) {
	var seq int
	err := tx.Raw(`
		INSERT INTO sale_counters (day, value) VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET value = sale_counters.value + 1
		RETURNING value`, day).Scan(&seq).Error
	return seq, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
