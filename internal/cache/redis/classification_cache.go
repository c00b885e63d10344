// Package redis caches validated vision results in Redis, keyed by image digest.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"trashit/internal/config"
	"trashit/internal/domain"
)

// ClassificationCache implements port.ClassificationCache on a Redis client.
type ClassificationCache struct {
	client *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewClient opens a Redis client from cache config.
func NewClient(cfg *config.CacheConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewClassificationCache wraps an existing client.
func NewClassificationCache(client *goredis.Client, cfg *config.CacheConfig) *ClassificationCache {
	return &ClassificationCache{
		client: client,
		ttl:    cfg.TTL,
		prefix: cfg.KeyPrefix,
	}
}

func (c *ClassificationCache) Get(ctx context.Context, key string) (*domain.VisionResult, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached classification: %w", err)
	}

	var vr domain.VisionResult
	if err := json.Unmarshal(val, &vr); err != nil {
		return nil, fmt.Errorf("decoding cached classification: %w", err)
	}
	if vr.MaterialsDetected == nil {
		vr.MaterialsDetected = []domain.DetectedMaterial{}
	}
	return &vr, nil
}

func (c *ClassificationCache) Set(ctx context.Context, key string, result *domain.VisionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding classification: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached classification: %w", err)
	}
	return nil
}

func (c *ClassificationCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
