package worker

import (
	"context"
	"encoding/json"
	"time"

	"tindapos/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	receiptQueue     = "queue:receipts"
	receiptDeadQueue = "queue:receipts:dead"

	maxAttempts = 3
)

// envelope wraps a job with its delivery attempt count for retry accounting.
type envelope struct {
	Job      service.ReceiptJob `json:"job"`
	Attempts int                `json:"attempts"`
}

// RedisDispatcher enqueues receipt jobs onto a Redis list consumed by the
// worker pool. Implements service.ReceiptDispatcher.
type RedisDispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRedisDispatcher(rdb *redis.Client, log zerolog.Logger) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb, log: log}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, job service.ReceiptJob) {
	raw, err := json.Marshal(envelope{Job: job})
	if err != nil {
		return
	}
	if err := d.rdb.LPush(ctx, receiptQueue, raw).Err(); err != nil {
		d.log.Error().Err(err).
			Str("sale_id", job.SaleID.String()).
			Msg("failed to enqueue receipt job")
	}
}

var _ service.ReceiptDispatcher = (*RedisDispatcher)(nil)

// requeue sends a failed envelope back to the queue, or to the dead-letter
// list once its attempts are exhausted.
func requeue(ctx context.Context, rdb *redis.Client, env envelope, log zerolog.Logger) {
	env.Attempts++
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}

	target := receiptQueue
	if env.Attempts >= maxAttempts {
		target = receiptDeadQueue
		log.Error().
			Str("sale_id", env.Job.SaleID.String()).
			Int("attempts", env.Attempts).
			Msg("receipt job moved to dead-letter queue")
	}

	// detach from request lifetimes so the requeue itself cannot be cancelled
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := rdb.LPush(pushCtx, target, raw).Err(); err != nil {
		log.Error().Err(err).Msg("failed to requeue receipt job")
	}
}
