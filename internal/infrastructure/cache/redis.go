// Package cache implementa la caché de reportes sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-ledger/pkg/config"
	"github.com/redis/go-redis/v9"
)

const generationKey = "reports:generation"

// NewClient abre el cliente y verifica la conexión con un PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// ReportCache guarda reportes serializados en JSON bajo una generación.
// Invalidate incrementa la generación: las claves viejas quedan huérfanas y expiran por TTL.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache ttl <= 0 usa 5 minutos.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *ReportCache) key(ctx context.Context, key string) (string, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", fmt.Errorf("cache: generation: %w", err)
	}
	return fmt.Sprintf("reports:%d:%s", gen, key), nil
}

// Get carga en dst el valor cacheado. Un miss devuelve (false, nil).
func (c *ReportCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	k, err := c.key(ctx, key)
	if err != nil {
		return false, err
	}
	payload, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda v con el TTL configurado.
func (c *ReportCache) Set(ctx context.Context, key string, v any) error {
	k, err := c.key(ctx, key)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, k, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate descarta todos los reportes cacheados.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("cache: invalidate: %w", err)
	}
	return nil
}
