package repository

import (
	"context"

	"tindapos/internal/dto"
	"tindapos/internal/model"

	"gorm.io/gorm"
)

type SystemLogRepository interface {
	Create(ctx context.Context, entry *model.SystemLog) error
	List(ctx context.Context, filter dto.SystemLogFilter) ([]model.SystemLog, int64, error)
}

type systemLogRepo struct{ db *gorm.DB }

func NewSystemLogRepository(db *gorm.DB) SystemLogRepository { return &systemLogRepo{db: db} }

func (r *systemLogRepo) Create(ctx context.Context, entry *model.SystemLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *systemLogRepo) List(ctx context.Context, filter dto.SystemLogFilter) ([]model.SystemLog, int64, error) {
	var entries []model.SystemLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SystemLog{})
	if filter.Level != "" {
		q = q.Where("level = ?", filter.Level)
	}
	if filter.Module != "" {
		q = q.Where("module = ?", filter.Module)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.DateFrom != "" {
		q = q.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("created_at < (?::date + interval '1 day')", filter.DateTo)
	}
	if filter.Search != "" {
		q = q.Where("message ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("User").Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&entries).Error
	return entries, total, err
}
