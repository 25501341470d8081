package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	resultCachePrefix = "assistant:cache:"

	// topGuestsCacheTTL bounds staleness of the full-collection guest
	// aggregation between dashboard refreshes.
	topGuestsCacheTTL = 2 * time.Minute
)

// ResultCache is a small read-through cache for expensive aggregation
// results. A miss is (nil, nil); cache failures are never fatal to the
// tool call they shield.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisResultCache backs ResultCache with the shared cache client.
type RedisResultCache struct {
	client *redis.Client
}

func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, resultCachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, resultCachePrefix+key, value, ttl).Err()
}

// cachedResult returns a previously stored tool result. Any cache problem
// degrades to a miss so the handler recomputes from the repository.
func (t *Toolset) cachedResult(ctx context.Context, key string) (map[string]any, bool) {
	if t.cache == nil {
		return nil, false
	}
	b, err := t.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("result cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if b == nil {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		zap.L().Warn("result cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

// storeResult caches a tool result best-effort.
func (t *Toolset) storeResult(ctx context.Context, key string, result map[string]any, ttl time.Duration) {
	if t.cache == nil {
		return
	}
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := t.cache.Set(ctx, key, b, ttl); err != nil {
		zap.L().Warn("result cache write failed", zap.String("key", key), zap.Error(err))
	}
}
