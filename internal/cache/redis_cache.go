package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"admitpath/internal/domain"
)

// redisCommander es el subconjunto de go-redis que usa este cache;
// la interfaz chica permite testear sin un servidor.
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisPredictionCache serializa resultados como JSON en Redis.
type RedisPredictionCache struct {
	client redisCommander
}

func NewRedisPredictionCache(client *redis.Client) *RedisPredictionCache {
	if client == nil {
		return nil
	}
	return &RedisPredictionCache{client: client}
}

func (c *RedisPredictionCache) Get(ctx context.Context, key string) (domain.PredictionResult, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PredictionResult{}, false, nil
	}
	if err != nil {
		return domain.PredictionResult{}, false, fmt.Errorf("cache get: %w", err)
	}
	var result domain.PredictionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// Entrada corrupta: se trata como miss para que se recalcule.
		return domain.PredictionResult{}, false, nil
	}
	return result, true, nil
}

func (c *RedisPredictionCache) Set(ctx context.Context, key string, result domain.PredictionResult, ttl time.Duration) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateProfile recorre las claves del perfil con SCAN y las borra.
func (c *RedisPredictionCache) InvalidateProfile(ctx context.Context, profileID string) error {
	pattern := profilePattern(profileID)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
