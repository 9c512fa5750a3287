// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/db"
	jwtmw "wastemap_backend/internal/platform/jwt"
	"wastemap_backend/internal/platform/password"
	"wastemap_backend/internal/platform/redis"
)

// FallbackJWTSecret is used when JWT_SECRET is unset. Tokens signed with it are forgeable
// by anyone who has read this source, so production startup reports it loudly.
const FallbackJWTSecret = "fallback-secret-change-in-production"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	// ErrFallbackSecretInProduction is reported by Validate when production runs on FallbackJWTSecret.
	ErrFallbackSecretInProduction = errors.New("JWT_SECRET is not set in production; using the fallback secret")
	// ErrMissingAdminCredentials is reported by Validate when ADMIN_EMAIL or ADMIN_PASSWORD is empty.
	ErrMissingAdminCredentials = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must both be set")
)

// Config is the typed process configuration.
type Config struct {
	Env  string
	Port string

	JWTSecret           string
	UsingFallbackSecret bool
	JWTExpiresIn        time.Duration
	BcryptCost          int

	AdminEmail    string
	AdminPassword string

	LogLevel string
	LogJSON  bool

	CORSAllowedOrigins []string

	HealthCacheTTL    time.Duration
	LocationsCacheTTL time.Duration

	RunMigrations bool
	DB            db.Config
	Redis         redis.Config
}

// Load reads the environment. Malformed values are reported as Configuration errors.
func Load() (Config, error) {
	const op = "config.Load"

	cfg := Config{
		Env:           getenv("APP_ENV", EnvDevelopment),
		Port:          getenv("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogJSON:       strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		DB:            db.LoadConfigFromEnv(),
		Redis:         redis.LoadConfigFromEnv(),
	}
	if os.Getenv("GIN_MODE") == "release" && cfg.Env == EnvDevelopment {
		cfg.Env = EnvProduction
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = FallbackJWTSecret
		cfg.UsingFallbackSecret = true
	}

	var err error
	if cfg.JWTExpiresIn, err = ParseTTL(getenv("JWT_EXPIRES_IN", "7d")); err != nil {
		return Config{}, apperr.E(apperr.Configuration, op, fmt.Errorf("JWT_EXPIRES_IN: %w", err))
	}
	if cfg.HealthCacheTTL, err = ParseTTL(getenv("HEALTH_CACHE_TTL", "30s")); err != nil {
		return Config{}, apperr.E(apperr.Configuration, op, fmt.Errorf("HEALTH_CACHE_TTL: %w", err))
	}
	if cfg.LocationsCacheTTL, err = ParseTTL(getenv("LOCATIONS_CACHE_TTL", "5m")); err != nil {
		return Config{}, apperr.E(apperr.Configuration, op, fmt.Errorf("LOCATIONS_CACHE_TTL: %w", err))
	}

	cfg.BcryptCost = password.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cfg.BcryptCost, err = strconv.Atoi(v); err != nil {
			return Config{}, apperr.E(apperr.Configuration, op, fmt.Errorf("BCRYPT_COST: %w", err))
		}
	}

	cfg.CORSAllowedOrigins = splitList(getenv("CORS_ALLOWED_ORIGINS", "*"))

	return cfg, nil
}

// IsProduction reports whether production checks apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// HasAdminCredentials reports whether the bootstrap admin is fully configured.
func (c Config) HasAdminCredentials() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// Validate reports every configuration problem at once, each of kind Configuration.
// The caller decides which ones are fatal.
func (c Config) Validate() error {
	const op = "config.Validate"

	var errs []error
	if c.UsingFallbackSecret && c.IsProduction() {
		errs = append(errs, apperr.E(apperr.Configuration, op, ErrFallbackSecretInProduction))
	}
	if !c.HasAdminCredentials() {
		errs = append(errs, apperr.E(apperr.Configuration, op, ErrMissingAdminCredentials))
	}
	return errors.Join(errs...)
}

// ParseTTL accepts a day count such as "7d", a bare number of seconds, or any time.ParseDuration string.
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// TokenTTL is JWTExpiresIn, falling back to the token service default.
func (c Config) TokenTTL() time.Duration {
	if c.JWTExpiresIn <= 0 {
		return jwtmw.DefaultTTL
	}
	return c.JWTExpiresIn
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
