package service

import (
	"context"
	"errors"

	"tindapos/internal/audit"
	"tindapos/internal/dto"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementParams describes one stock movement to be appended to the ledger.
// Quantity is the signed stock delta: negative for sales and damage,
// positive for restocks and returns.
type MovementParams struct {
	ProductID uuid.UUID
	ActorID   uuid.UUID
	Type      string
	Quantity  int
	Reason    *string
	SaleID    *uuid.UUID
}

type InventoryService interface {
	// RecordMovementTx is the single writer of the stock ledger. It locks the
	// product row, verifies the resulting quantity is non-negative, appends a
	// ledger entry carrying before/change/after, and updates the cached stock
	// projection. Every stock mutation in the system flows through here.
	RecordMovementTx(tx *gorm.DB, p MovementParams) (*model.InventoryLog, *model.Product, error)

	AdjustStock(ctx context.Context, productID, actorID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	ListMovements(ctx context.Context, filter repository.InventoryLogFilter) (*dto.MovementListResponse, error)
	ProductHistory(ctx context.Context, productID uuid.UUID, limit int) ([]dto.MovementResponse, error)
	LowStockProducts(ctx context.Context) ([]model.Product, error)
}

type inventoryService struct {
	products repository.ProductRepository
	ledger   repository.InventoryLogRepository
	sink     audit.EventSink
}

func NewInventoryService(products repository.ProductRepository, ledger repository.InventoryLogRepository, sink audit.EventSink) InventoryService {
	return &inventoryService{products: products, ledger: ledger, sink: sink}
}

func (s *inventoryService) RecordMovementTx(tx *gorm.DB, p MovementParams) (*model.InventoryLog, *model.Product, error) {
	product, err := s.products.FindByIDForUpdateTx(tx, p.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}

	// inactive products are not sellable; same outcome as a missing product
	if p.Type == model.MovementSale && !product.IsActive {
		return nil, nil, ErrProductNotFound
	}

	before := product.StockQuantity
	after := before + p.Quantity
	if after < 0 {
		if p.Type == model.MovementSale {
			return nil, nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   before,
				Requested:   -p.Quantity,
			}
		}
		return nil, nil, ErrInvalidMovement
	}

	entry := &model.InventoryLog{
		ProductID:      p.ProductID,
		UserID:         p.ActorID,
		Type:           p.Type,
		QuantityBefore: before,
		QuantityChange: p.Quantity,
		QuantityAfter:  after,
		Reason:         p.Reason,
		SaleID:         p.SaleID,
	}
	if err := s.ledger.CreateTx(tx, entry); err != nil {
		return nil, nil, err
	}
	if err := s.products.UpdateStockTx(tx, p.ProductID, p.Quantity); err != nil {
		return nil, nil, err
	}

	product.StockQuantity = after
	return entry, product, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID, actorID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	var adjusted *model.Product

	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		_, product, err := s.RecordMovementTx(tx, MovementParams{
			ProductID: productID,
			ActorID:   actorID,
			Type:      req.Type,
			Quantity:  req.Quantity,
			Reason:    req.Reason,
		})
		if err != nil {
			return err
		}
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleInventory, "stock_adjusted",
		"stock adjusted for "+adjusted.Name, &actorID,
		map[string]interface{}{
			"product_id": productID.String(),
			"type":       req.Type,
			"change":     req.Quantity,
			"stock":      adjusted.StockQuantity,
		})

	if adjusted.StockQuantity <= adjusted.LowStockThreshold {
		s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleInventory, "low_stock",
			adjusted.Name+" is low on stock", &actorID,
			map[string]interface{}{
				"product_id": productID.String(),
				"stock":      adjusted.StockQuantity,
				"threshold":  adjusted.LowStockThreshold,
			})
	}

	return &dto.AdjustStockResponse{StockQuantity: adjusted.StockQuantity}, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter repository.InventoryLogFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	entries, total, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.MovementListResponse{
		Data:  make([]dto.MovementResponse, 0, len(entries)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range entries {
		resp.Data = append(resp.Data, toMovementResponse(&entries[i]))
	}
	return resp, nil
}

func (s *inventoryService) ProductHistory(ctx context.Context, productID uuid.UUID, limit int) ([]dto.MovementResponse, error) {
	if limit < 1 {
		limit = 50
	}
	entries, err := s.ledger.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toMovementResponse(&entries[i]))
	}
	return out, nil
}

func (s *inventoryService) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.ListLowStock(ctx)
}

func toMovementResponse(e *model.InventoryLog) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:             e.ID.String(),
		ProductID:      e.ProductID.String(),
		Type:           e.Type,
		QuantityBefore: e.QuantityBefore,
		QuantityChange: e.QuantityChange,
		QuantityAfter:  e.QuantityAfter,
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.Product != nil {
		resp.ProductName = e.Product.Name
	}
	return resp
}
