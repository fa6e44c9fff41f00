package service

import (
	"context"
	"testing"

	"tindapos/internal/audit"
	"tindapos/internal/dto"
	"tindapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStock(t *testing.T) {
	actor := uuid.New()

	t.Run("restock appends a ledger entry and bumps stock", func(t *testing.T) {
		p := testProduct("Shampoo", "12.00", 4, 3)
		products := newStubProductRepo(p)
		ledger := &stubLedgerRepo{}
		sink := &recordingSink{}
		svc := NewInventoryService(products, ledger, sink)

		reason := "weekly delivery"
		resp, err := svc.AdjustStock(context.Background(), p.ID, actor, dto.AdjustStockRequest{
			Type:     model.MovementRestock,
			Quantity: 20,
			Reason:   &reason,
		})
		require.NoError(t, err)
		assert.Equal(t, 24, resp.StockQuantity)
		assert.Equal(t, 24, products.stock(p.ID))

		entries := ledger.byProduct(p.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, model.MovementRestock, entries[0].Type)
		assert.Equal(t, 4, entries[0].QuantityBefore)
		assert.Equal(t, 20, entries[0].QuantityChange)
		assert.Equal(t, 24, entries[0].QuantityAfter)
		require.NotNil(t, entries[0].Reason)
		assert.Equal(t, reason, *entries[0].Reason)
		assert.Nil(t, entries[0].SaleID)

		require.Len(t, sink.byAction("stock_adjusted"), 1)
		assert.Empty(t, sink.byAction("low_stock"))
	})

	t.Run("rejects movements that would drive stock negative", func(t *testing.T) {
		p := testProduct("Vinegar", "18.00", 5, 2)
		products := newStubProductRepo(p)
		ledger := &stubLedgerRepo{}
		svc := NewInventoryService(products, ledger, &recordingSink{})

		_, err := svc.AdjustStock(context.Background(), p.ID, actor, dto.AdjustStockRequest{
			Type:     model.MovementDamage,
			Quantity: -9,
		})
		require.ErrorIs(t, err, ErrInvalidMovement)
		assert.Equal(t, 5, products.stock(p.ID))
		assert.Empty(t, ledger.byProduct(p.ID))
	})

	t.Run("warns when the adjustment leaves stock at the threshold", func(t *testing.T) {
		p := testProduct("Noodles", "10.00", 10, 3)
		products := newStubProductRepo(p)
		sink := &recordingSink{}
		svc := NewInventoryService(products, &stubLedgerRepo{}, sink)

		_, err := svc.AdjustStock(context.Background(), p.ID, actor, dto.AdjustStockRequest{
			Type:     model.MovementDamage,
			Quantity: -7,
		})
		require.NoError(t, err)

		warns := sink.byAction("low_stock")
		require.Len(t, warns, 1)
		assert.Equal(t, audit.LevelWarn, warns[0].Level)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		svc := NewInventoryService(newStubProductRepo(), &stubLedgerRepo{}, &recordingSink{})
		_, err := svc.AdjustStock(context.Background(), uuid.New(), actor, dto.AdjustStockRequest{
			Type:     model.MovementRestock,
			Quantity: 5,
		})
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRecordMovementChainsEntries(t *testing.T) {
	actor := uuid.New()
	p := testProduct("Sugar 1kg", "60.00", 8, 2)
	products := newStubProductRepo(p)
	ledger := &stubLedgerRepo{}
	svc := NewInventoryService(products, ledger, &recordingSink{})

	deltas := []int{-3, 10, -4}
	for _, d := range deltas {
		_, _, err := svc.RecordMovementTx(nil, MovementParams{
			ProductID: p.ID,
			ActorID:   actor,
			Type:      model.MovementAdjustment,
			Quantity:  d,
		})
		require.NoError(t, err)
	}

	entries := ledger.byProduct(p.ID)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].QuantityAfter, entries[i].QuantityBefore,
			"entry %d must start where entry %d ended", i, i-1)
	}
	assert.Equal(t, 11, products.stock(p.ID))
	assert.Equal(t, 11, entries[len(entries)-1].QuantityAfter)
}

func TestLowStockProducts(t *testing.T) {
	low := testProduct("Matches", "3.00", 2, 5)
	ok := testProduct("Candles", "12.00", 40, 5)
	products := newStubProductRepo(low, ok)
	svc := NewInventoryService(products, &stubLedgerRepo{}, &recordingSink{})

	out, err := svc.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Matches", out[0].Name)
}
