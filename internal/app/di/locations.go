// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	locationsadapters "wastemap_backend/internal/feature/locations/adapters"
	"wastemap_backend/internal/feature/locations/usecase"
	"wastemap_backend/internal/platform/cache"
)

// NewLocationRepository creates a LocationRepository implementation.
// If Redis is available, reads go through a Redis cache in front of the database.
// Otherwise, it uses the database directly.
func NewLocationRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.LocationRepository {
	repo := locationsadapters.NewLocationRepository(db)
	if rdb != nil {
		return cache.NewCachingLocationRepository(rdb, ttl, repo, "locations")
	}
	return repo
}
