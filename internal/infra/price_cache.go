package infra

import (
	"context"
	"encoding/json"
	"time"

	"tindapos/internal/dto"
	"tindapos/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const priceCacheTTL = 5 * time.Minute

// redisPriceCache is the Redis-backed price lookup cache. All operations are
// best-effort; failures degrade to database reads.
type redisPriceCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewPriceCache(rdb *redis.Client, log zerolog.Logger) service.PriceCache {
	return &redisPriceCache{rdb: rdb, log: log}
}

func priceKey(sku string) string { return "price:" + sku }

func (c *redisPriceCache) Get(ctx context.Context, sku string) (*dto.PriceCheckResponse, bool) {
	raw, err := c.rdb.Get(ctx, priceKey(sku)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("sku", sku).Msg("price cache read failed")
		}
		return nil, false
	}
	var resp dto.PriceCheckResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *redisPriceCache) Set(ctx context.Context, sku string, resp *dto.PriceCheckResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, priceKey(sku), raw, priceCacheTTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("sku", sku).Msg("price cache write failed")
	}
}

func (c *redisPriceCache) Invalidate(ctx context.Context, sku string) {
	if err := c.rdb.Del(ctx, priceKey(sku)).Err(); err != nil {
		c.log.Debug().Err(err).Str("sku", sku).Msg("price cache invalidation failed")
	}
}
