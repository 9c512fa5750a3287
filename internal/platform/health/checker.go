// Package health reports service readiness and caches the result for a bounded TTL.
package health

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	DatabaseConnected = "connected"
	DatabaseError     = "error"

	// pingTimeout bounds the database probe.
	pingTimeout = 5 * time.Second

	reportKey = "report"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Report is the health payload.
type Report struct {
	Status              string    `json:"status"`
	Timestamp           time.Time `json:"timestamp"`
	Environment         string    `json:"environment"`
	HasJWTSecret        bool      `json:"hasJwtSecret"`
	HasDatabaseURL      bool      `json:"hasDatabaseUrl"`
	HasAdminCredentials bool      `json:"hasAdminCredentials"`
	Database            string    `json:"database"`
	DBError             string    `json:"dbError,omitempty"`
}

// Healthy reports whether every probe passed.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// Settings are the static facts included in every report.
type Settings struct {
	Environment         string
	Production          bool
	HasJWTSecret        bool
	HasDatabaseURL      bool
	HasAdminCredentials bool
}

// Cache holds the last report. It is injected so tests can own its lifetime.
type Cache = lru.LRU[string, Report]

// NewCache returns a single-entry cache whose entry expires after ttl.
func NewCache(ttl time.Duration) *Cache {
	return lru.NewLRU[string, Report](1, nil, ttl)
}

// Checker probes the database and caches the outcome.
type Checker struct {
	db       Pinger
	cache    *Cache
	settings Settings
	now      func() time.Time
}

// NewChecker creates a Checker. A nil cache disables caching.
func NewChecker(db Pinger, cache *Cache, settings Settings) *Checker {
	return &Checker{
		db:       db,
		cache:    cache,
		settings: settings,
		now:      time.Now,
	}
}

// Check returns the cached report if it is still fresh, otherwise probes again.
func (h *Checker) Check(ctx context.Context) Report {
	if h.cache != nil {
		if r, ok := h.cache.Get(reportKey); ok {
			return r
		}
	}

	r := Report{
		Status:              StatusOK,
		Timestamp:           h.now().UTC(),
		Environment:         h.settings.Environment,
		HasJWTSecret:        h.settings.HasJWTSecret,
		HasDatabaseURL:      h.settings.HasDatabaseURL,
		HasAdminCredentials: h.settings.HasAdminCredentials,
		Database:            DatabaseConnected,
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.db.PingContext(pingCtx); err != nil {
		slog.Warn("database health check failed", "error", err)
		r.Status = StatusError
		r.Database = DatabaseError
		r.DBError = err.Error()
		if h.settings.Production {
			r.DBError = "database unreachable"
		}
	}

	if h.cache != nil {
		h.cache.Add(reportKey, r)
	}
	return r
}

// Invalidate drops the cached report so the next Check probes again.
func (h *Checker) Invalidate() {
	if h.cache != nil {
		h.cache.Purge()
	}
}
