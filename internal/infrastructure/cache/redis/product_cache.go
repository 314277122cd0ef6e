package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Hala-ashour/Restaurant98/internal/config"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log.Info("Redis connected", logger.String("addr", cfg.Addr), logger.Int("db", cfg.DB))
	return client, nil
}

// ProductCache stores product JSON under product:<id>.
// Cache failures never fail the caller; they are logged and treated as misses.
type ProductCache struct {
	client goredis.Cmdable
	ttl    time.Duration
	log    logger.Logger
}

func NewProductCache(client goredis.Cmdable, ttl time.Duration, log logger.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, log: log}
}

func productKey(id string) string {
	return "product:" + id
}

func (c *ProductCache) Get(ctx context.Context, id string) (*catalog.Product, bool) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.WithContext(ctx).Warn("product cache read failed", logger.String("product_id", id), logger.Error(err))
		return nil, false
	}

	var p catalog.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		c.log.WithContext(ctx).Warn("product cache entry corrupt", logger.String("product_id", id), logger.Error(err))
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) Set(ctx context.Context, p *catalog.Product) {
	raw, err := json.Marshal(p)
	if err != nil {
		c.log.WithContext(ctx).Warn("product cache encode failed", logger.String("product_id", p.ID), logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, productKey(p.ID), raw, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warn("product cache write failed", logger.String("product_id", p.ID), logger.Error(err))
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.WithContext(ctx).Warn("product cache invalidation failed", logger.Strings("product_ids", ids), logger.Error(err))
	}
}
