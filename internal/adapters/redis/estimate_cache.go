package redis_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// EstimateCache - кэш расчетов стоимости и кредита в Redis. Значения хранятся как JSON.
type EstimateCache struct {
	client *redis.Client
}

// NewEstimateCache открывает клиент и проверяет соединение.
func NewEstimateCache(ctx context.Context, cfg Config) (*EstimateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return &EstimateCache{client: client}, nil
}

func (c *EstimateCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Битую запись считаем промахом
		contextkeys.LoggerFromContext(ctx).Warn("Dropping undecodable cache entry", port.Fields{
			"component": "EstimateCache",
			"key":       key,
			"error":     err.Error(),
		})
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *EstimateCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *EstimateCache) Close() error {
	return c.client.Close()
}
