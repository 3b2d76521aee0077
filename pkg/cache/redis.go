package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to cfg.Addr. It returns nil, nil when no address is
// configured so callers can run without a cache.
func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// AvailabilityKey is the key of the cached seat map of one flight.
func AvailabilityKey(flightID uuid.UUID) string {
	return "flight:" + flightID.String() + ":availability"
}

// Cache stores JSON values in Redis. A Cache without a client is a no-op,
// and Redis failures are logged, never returned.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "cache")),
	}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON decodes the value under key into dst and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("Cache entry is not valid JSON", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache value cannot be encoded", zap.Error(err), zap.String("key", key))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}
