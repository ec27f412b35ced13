package scheduling

import (
	"context"
	"encoding/json"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCache is the read cache for availability grids. Implementations
// are best-effort: a miss or error falls back to the store.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisCache adapts a Redis client to AvailabilityCache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps the given client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func availabilityCacheKey(providerID string) string {
	return "availability:" + providerID
}

func (s *DefaultSchedulingService) cachedAvailability(ctx context.Context, providerID string) (map[string]map[string]*models.Slot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, availabilityCacheKey(providerID))
	if err != nil {
		return nil, false
	}
	var grid map[string]map[string]*models.Slot
	if err := json.Unmarshal([]byte(raw), &grid); err != nil {
		return nil, false
	}
	return grid, true
}

func (s *DefaultSchedulingService) cacheAvailability(ctx context.Context, providerID string, grid map[string]map[string]*models.Slot) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(grid)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, availabilityCacheKey(providerID), raw, availabilityCacheTTL); err != nil {
		utils.GetLogger().Warn("failed to cache availability",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

func (s *DefaultSchedulingService) invalidateAvailability(ctx context.Context, providerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityCacheKey(providerID)); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("providerId", providerID), zap.Error(err))
	}
}
