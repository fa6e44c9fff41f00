package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tindapos/internal/audit"
	"tindapos/internal/infra"
	"tindapos/internal/service"

	"github.com/rs/zerolog"
)

// LowStockCron periodically sweeps for products at or below their threshold,
// emits a digest warn event, and mails the configured alert address.
type LowStockCron struct {
	inventory service.InventoryService
	mailer    *infra.Mailer
	sink      audit.EventSink
	recipient string
	store     string
	interval  time.Duration
	log       zerolog.Logger
}

func NewLowStockCron(inventory service.InventoryService, mailer *infra.Mailer, sink audit.EventSink, recipient, storeName string, interval time.Duration, log zerolog.Logger) *LowStockCron {
	if interval <= 0 {
		interval = time.Hour
	}
	return &LowStockCron{
		inventory: inventory,
		mailer:    mailer,
		sink:      sink,
		recipient: recipient,
		store:     storeName,
		interval:  interval,
		log:       log,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (c *LowStockCron) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep(ctx)
			}
		}
	}()
}

func (c *LowStockCron) sweep(ctx context.Context) {
	products, err := c.inventory.LowStockProducts(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("low stock sweep failed")
		return
	}
	if len(products) == 0 {
		return
	}

	c.sink.Emit(ctx, audit.LevelWarn, audit.ModuleInventory, "low_stock_sweep",
		fmt.Sprintf("%d product(s) at or below threshold", len(products)), nil,
		map[string]interface{}{"count": len(products)})

	if c.recipient == "" || !c.mailer.Enabled() {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following products are at or below their stock threshold:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "  %-40s (%s)  stock: %d  threshold: %d\n",
			p.Name, p.SKU, p.StockQuantity, p.LowStockThreshold)
	}

	subject := fmt.Sprintf("%s: %d product(s) low on stock", c.store, len(products))
	if err := c.mailer.Send(c.recipient, subject, b.String(), ""); err != nil {
		c.log.Error().Err(err).Msg("failed to send low stock digest")
		return
	}
	c.log.Info().Int("products", len(products)).Msg("low stock digest sent")
}
