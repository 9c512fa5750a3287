// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"wastemap_backend/internal/feature/locations/domain/entity"
	"wastemap_backend/internal/feature/locations/usecase"
)

// CachingLocationRepository decorates a LocationRepository with Redis caching.
// List results are cached per type filter. Every mutation drops the whole namespace.
type CachingLocationRepository struct {
	inner     usecase.LocationRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.LocationRepository = (*CachingLocationRepository)(nil)

// NewCachingLocationRepository decorates a LocationRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "locations".
// A nil rdb disables caching and every call goes to inner.
func NewCachingLocationRepository(rdb *redis.Client, ttl time.Duration, inner usecase.LocationRepository, namespace string) *CachingLocationRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "locations"
	}
	return &CachingLocationRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListActive checks the cache first, then falls back to the inner repository.
func (c *CachingLocationRepository) ListActive(ctx context.Context, typ entity.LocationType) ([]entity.DisposalLocation, error) {
	if c.rdb == nil {
		return c.inner.ListActive(ctx, typ)
	}

	key := c.cacheKey(typ)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DisposalLocation
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListActive(ctx, typ)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Create inserts into the inner repository and invalidates the cache.
func (c *CachingLocationRepository) Create(ctx context.Context, l *entity.DisposalLocation) error {
	if err := c.inner.Create(ctx, l); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update updates the inner repository and invalidates the cache.
func (c *CachingLocationRepository) Update(ctx context.Context, id int64, patch usecase.LocationPatch) (*entity.DisposalLocation, error) {
	l, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return l, nil
}

// SoftDelete deactivates in the inner repository and invalidates the cache.
func (c *CachingLocationRepository) SoftDelete(ctx context.Context, id int64) error {
	if err := c.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate is best effort: a failed delete leaves entries to expire with the TTL.
func (c *CachingLocationRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := deleteByPattern(ctx, c.rdb, c.namespace+":*"); err != nil {
		slog.Warn("location cache invalidation failed", "error", err, "namespace", c.namespace)
	}
}

func (c *CachingLocationRepository) cacheKey(typ entity.LocationType) string {
	filter := "all"
	if typ != "" {
		filter = safe(string(typ))
	}
	return c.namespace + ":list:" + filter
}
