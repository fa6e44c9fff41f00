package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tindapos/internal/audit"
	"tindapos/internal/dto"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptJob asks the worker pool to render (and optionally mail) a receipt.
type ReceiptJob struct {
	SaleID        uuid.UUID `json:"sale_id"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
}

// ReceiptDispatcher hands receipt jobs to the async pipeline. Dispatch is
// fire-and-forget: a queue failure never fails the sale.
type ReceiptDispatcher interface {
	Dispatch(ctx context.Context, job ReceiptJob)
}

type SaleService interface {
	CreateSale(ctx context.Context, cashierID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	VoidSale(ctx context.Context, actorID, saleID uuid.UUID, req dto.VoidSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Summary(ctx context.Context, period string) (*dto.SaleSummaryResponse, error)
}

type saleService struct {
	sales     repository.SaleRepository
	inventory InventoryService
	sink      audit.EventSink
	receipts  ReceiptDispatcher
	now       func() time.Time
}

func NewSaleService(sales repository.SaleRepository, inventory InventoryService, sink audit.EventSink, receipts ReceiptDispatcher) SaleService {
	return &saleService{
		sales:     sales,
		inventory: inventory,
		sink:      sink,
		receipts:  receipts,
		now:       time.Now,
	}
}

// CreateSale processes one register transaction: totals are computed from the
// request, stock is checked and decremented under row locks, the sale and its
// item snapshots are created, and one ledger entry is appended per line. All
// of it commits atomically; a failure on any line leaves no trace.
func (s *saleService) CreateSale(ctx context.Context, cashierID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// The ID is assigned up front so ledger entries written before the sale
	// row can already reference it.
	sale := &model.Sale{
		ID:             uuid.New(),
		UserID:         cashierID,
		PaymentMethod:  req.PaymentMethod,
		Status:         model.SaleCompleted,
		CustomerName:   req.CustomerName,
		Notes:          req.Notes,
		AmountTendered: req.AmountTendered,
	}

	var lowStock []*model.Product

	err := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		day := s.now().Format("20060102")
		seq, err := s.sales.NextSaleSeqTx(tx, day)
		if err != nil {
			return err
		}
		sale.SaleNumber = fmt.Sprintf("SALE-%s-%04d", day, seq)

		subtotal := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))
		movementReason := "Sale #" + sale.SaleNumber

		for _, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return ErrProductNotFound
			}

			saleID := sale.ID
			_, product, err := s.inventory.RecordMovementTx(tx, MovementParams{
				ProductID: productID,
				ActorID:   cashierID,
				Type:      model.MovementSale,
				Quantity:  -line.Quantity,
				Reason:    &movementReason,
				SaleID:    &saleID,
			})
			if err != nil {
				return err
			}

			lineSubtotal := product.SellingPrice.
				Mul(decimal.NewFromInt(int64(line.Quantity))).
				Sub(line.Discount)
			subtotal = subtotal.Add(lineSubtotal)

			items = append(items, model.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.SellingPrice,
				Quantity:    line.Quantity,
				Discount:    line.Discount,
				Subtotal:    lineSubtotal,
			})

			if product.StockQuantity <= product.LowStockThreshold {
				lowStock = append(lowStock, product)
			}
		}

		sale.Subtotal = subtotal
		sale.TotalAmount = subtotal

		if req.AmountTendered.LessThan(sale.TotalAmount) {
			return ErrInsufficientPayment
		}
		sale.ChangeAmount = req.AmountTendered.Sub(sale.TotalAmount)
		sale.Items = items

		return s.sales.CreateTx(tx, sale)
	})
	if err != nil {
		return nil, s.saleError(ctx, &cashierID, "sale_failed", err)
	}

	s.sink.Emit(ctx, audit.LevelInfo, audit.ModuleSales, "sale_created",
		"sale "+sale.SaleNumber+" completed", &cashierID,
		map[string]interface{}{
			"sale_id": sale.ID.String(),
			"total":   sale.TotalAmount.String(),
			"items":   len(sale.Items),
		})

	for _, p := range lowStock {
		s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleInventory, "low_stock",
			p.Name+" is low on stock", &cashierID,
			map[string]interface{}{
				"product_id": p.ID.String(),
				"stock":      p.StockQuantity,
				"threshold":  p.LowStockThreshold,
			})
	}

	if s.receipts != nil {
		s.receipts.Dispatch(ctx, ReceiptJob{SaleID: sale.ID, CustomerEmail: req.CustomerEmail})
	}

	resp := toSaleResponse(sale)
	return &resp, nil
}

// VoidSale reverses a completed sale: each line quantity re-enters stock as a
// return movement linked to the sale, and the sale flips to voided. Voiding
// is one-way; a voided sale can never be voided again or restored.
func (s *saleService) VoidSale(ctx context.Context, actorID, saleID uuid.UUID, req dto.VoidSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if sale.Status != model.SaleCompleted {
		return nil, ErrInvalidSaleState
	}

	notes := "VOIDED: " + req.Reason
	if sale.Notes != nil && *sale.Notes != "" {
		notes = *sale.Notes + "\n" + notes
	}

	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		// Flip the status first, guarded on completed: of two concurrent
		// voids only one flip lands, and the loser restores nothing.
		flipped, err := s.sales.MarkVoidedTx(tx, sale.ID, notes)
		if err != nil {
			return err
		}
		if !flipped {
			return ErrInvalidSaleState
		}

		reason := "Voided Sale #" + sale.SaleNumber
		for _, item := range sale.Items {
			sid := sale.ID
			if _, _, err := s.inventory.RecordMovementTx(tx, MovementParams{
				ProductID: item.ProductID,
				ActorID:   actorID,
				Type:      model.MovementReturn,
				Quantity:  item.Quantity,
				Reason:    &reason,
				SaleID:    &sid,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.saleError(ctx, &actorID, "void_failed", err)
	}

	sale.Status = model.SaleVoided
	sale.Notes = &notes

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleSales, "sale_voided",
		"sale "+sale.SaleNumber+" voided", &actorID,
		map[string]interface{}{
			"sale_id": sale.ID.String(),
			"reason":  req.Reason,
			"total":   sale.TotalAmount.String(),
		})

	resp := toSaleResponse(sale)
	return &resp, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.SaleListResponse{
		Data:  make([]dto.SaleResponse, 0, len(sales)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range sales {
		resp.Data = append(resp.Data, toSaleResponse(&sales[i]))
	}
	return resp, nil
}

func (s *saleService) Summary(ctx context.Context, period string) (*dto.SaleSummaryResponse, error) {
	now := s.now()
	var from time.Time
	to := now

	switch period {
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, -1, 0)
	default:
		period = "today"
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	row, top, err := s.sales.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if row.TotalSales > 0 {
		avg = row.TotalRevenue.Div(decimal.NewFromInt(row.TotalSales)).Round(2)
	}

	resp := &dto.SaleSummaryResponse{
		Period:       period,
		TotalSales:   row.TotalSales,
		TotalRevenue: row.TotalRevenue,
		AverageSale:  avg,
		TopProducts:  make([]dto.TopProduct, 0, len(top)),
	}
	for _, t := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProduct{
			ProductName:  t.ProductName,
			TotalQty:     t.TotalQty,
			TotalRevenue: t.TotalRevenue,
		})
	}
	return resp, nil
}

// saleError passes taxonomy errors through untouched and collapses anything
// else into ErrSaleFailed after reporting the real cause to the sink. Clients
// never see internal failure detail.
func (s *saleService) saleError(ctx context.Context, actorID *uuid.UUID, action string, err error) error {
	var stockErr *InsufficientStockError
	switch {
	case errors.As(err, &stockErr),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSaleNotFound),
		errors.Is(err, ErrInsufficientPayment),
		errors.Is(err, ErrInvalidSaleState),
		errors.Is(err, ErrInvalidMovement):
		return err
	}

	s.sink.Emit(ctx, audit.LevelError, audit.ModuleSales, action,
		"sale processing failed: "+err.Error(), actorID, nil)
	return ErrSaleFailed
}

func toSaleResponse(sale *model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:             sale.ID.String(),
		SaleNumber:     sale.SaleNumber,
		CashierID:      sale.UserID.String(),
		Subtotal:       sale.Subtotal,
		TotalAmount:    sale.TotalAmount,
		AmountTendered: sale.AmountTendered,
		ChangeAmount:   sale.ChangeAmount,
		PaymentMethod:  sale.PaymentMethod,
		Status:         sale.Status,
		CustomerName:   sale.CustomerName,
		Notes:          sale.Notes,
		CreatedAt:      sale.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:          make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	if sale.Cashier != nil {
		resp.CashierName = sale.Cashier.Name
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}
