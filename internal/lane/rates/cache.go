// internal/lane/rates/cache.go
package rates

import (
	"context"
	"time"

	"lane-workers/internal/common/database"
	"lane-workers/internal/models"
)

// LocationIDCache caches the opaque identifiers the location-lookup service
// assigns to canonical locations. A nil cache on the orchestrator disables
// caching.
type LocationIDCache interface {
	Get(ctx context.Context, loc models.CanonicalLocation) (string, bool)
	Put(ctx context.Context, loc models.CanonicalLocation, id string)
}

// RedisLocationCache backs LocationIDCache with Redis. Cache failures are
// treated as misses; the lookup service is the source of truth.
type RedisLocationCache struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewRedisLocationCache(redis *database.RedisClient, ttl time.Duration) *RedisLocationCache {
	return &RedisLocationCache{redis: redis, ttl: ttl}
}

func (c *RedisLocationCache) Get(ctx context.Context, loc models.CanonicalLocation) (string, bool) {
	id, err := c.redis.Get(ctx, locationCacheKey(loc))
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func (c *RedisLocationCache) Put(ctx context.Context, loc models.CanonicalLocation, id string) {
	_ = c.redis.Set(ctx, locationCacheKey(loc), id, c.ttl)
}

func locationCacheKey(loc models.CanonicalLocation) string {
	u := loc.Uppercased()
	return "locid:" + u.City + "|" + u.RegionCode + "|" + u.CountryCode
}
