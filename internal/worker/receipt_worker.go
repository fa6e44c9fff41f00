package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tindapos/internal/infra"
	"tindapos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ReceiptPool consumes receipt jobs from Redis with a fixed set of workers.
// Each job renders the sale's PDF receipt and, when the customer left an
// email address, mails it to them.
type ReceiptPool struct {
	rdb      *redis.Client
	sales    repository.SaleRepository
	renderer *infra.ReceiptRenderer
	mailer   *infra.Mailer
	store    string
	size     int
	log      zerolog.Logger

	wg sync.WaitGroup
}

func NewReceiptPool(rdb *redis.Client, sales repository.SaleRepository, renderer *infra.ReceiptRenderer, mailer *infra.Mailer, storeName string, size int, log zerolog.Logger) *ReceiptPool {
	if size < 1 {
		size = 1
	}
	return &ReceiptPool{
		rdb:      rdb,
		sales:    sales,
		renderer: renderer,
		mailer:   mailer,
		store:    storeName,
		size:     size,
		log:      log,
	}
}

// Start launches the workers. They run until ctx is cancelled.
func (p *ReceiptPool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Wait blocks until all workers have exited.
func (p *ReceiptPool) Wait() { p.wg.Wait() }

func (p *ReceiptPool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()
	log.Info().Msg("receipt worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("receipt worker stopping")
			return
		default:
		}

		res, err := p.rdb.BRPop(ctx, 5*time.Second, receiptQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Msg("queue read failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value]
		if len(res) != 2 {
			continue
		}

		var env envelope
		if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
			log.Error().Err(err).Msg("discarding undecodable receipt job")
			continue
		}

		if err := p.process(ctx, env); err != nil {
			log.Error().Err(err).
				Str("sale_id", env.Job.SaleID.String()).
				Msg("receipt job failed")
			requeue(ctx, p.rdb, env, log)
		}
	}
}

func (p *ReceiptPool) process(ctx context.Context, env envelope) error {
	sale, err := p.sales.FindByID(ctx, env.Job.SaleID)
	if err != nil {
		return fmt.Errorf("load sale: %w", err)
	}

	path, err := p.renderer.Render(sale)
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	if env.Job.CustomerEmail != nil && p.mailer.Enabled() {
		subject := fmt.Sprintf("%s receipt %s", p.store, sale.SaleNumber)
		body := fmt.Sprintf("Thank you for your purchase. Your receipt %s is attached.", sale.SaleNumber)
		if err := p.mailer.Send(*env.Job.CustomerEmail, subject, body, path); err != nil {
			return fmt.Errorf("mail receipt: %w", err)
		}
	}

	p.log.Info().
		Str("sale_number", sale.SaleNumber).
		Str("path", path).
		Msg("receipt generated")
	return nil
}
