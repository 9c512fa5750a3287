package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"wastemap_backend/internal/app/di"
	"wastemap_backend/internal/app/router"
	authadapters "wastemap_backend/internal/feature/auth/adapters"
	eventsadapters "wastemap_backend/internal/feature/events/adapters"
	eventshandler "wastemap_backend/internal/feature/events/transport/handler"
	eventsusecase "wastemap_backend/internal/feature/events/usecase"
	feedbackadapters "wastemap_backend/internal/feature/feedback/adapters"
	feedbackhandler "wastemap_backend/internal/feature/feedback/transport/handler"
	feedbackusecase "wastemap_backend/internal/feature/feedback/usecase"
	locationsadapters "wastemap_backend/internal/feature/locations/adapters"
	locationshandler "wastemap_backend/internal/feature/locations/transport/handler"
	locationsusecase "wastemap_backend/internal/feature/locations/usecase"
	statsadapters "wastemap_backend/internal/feature/stats/adapters"
	statshandler "wastemap_backend/internal/feature/stats/transport/handler"
	statsusecase "wastemap_backend/internal/feature/stats/usecase"
	"wastemap_backend/internal/platform/config"
	"wastemap_backend/internal/platform/db"
	"wastemap_backend/internal/platform/health"
	platformhandler "wastemap_backend/internal/platform/http/handler"
	"wastemap_backend/internal/platform/logger"
	infraredis "wastemap_backend/internal/platform/redis"
)

const (
	dbConnectTimeout = 60 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	// .envを読み込む
	envErr := godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Initialize("info", false)
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogJSON)
	if envErr != nil {
		slog.Info(".env not found; using system environment variables")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrFallbackSecretInProduction) {
			slog.Error("JWT_SECRET IS NOT SET IN PRODUCTION. Tokens are signed with the public fallback secret.")
		}
		if errors.Is(err, config.ErrMissingAdminCredentials) {
			slog.Error("admin bootstrap is not configured", "error", err)
			os.Exit(1)
		}
	}
	if cfg.UsingFallbackSecret && !cfg.IsProduction() {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.ConnectWithRetry(db.BuildDSN(cfg.DB), dbConnectTimeout, db.OpenPostgres)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			slog.Error("failed to migrate", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(gdb)
	locationRepo := di.NewLocationRepository(rdb, gdb, cfg.LocationsCacheTTL)
	eventRepo := eventsadapters.NewEventRepository(gdb)
	feedbackRepo := feedbackadapters.NewFeedbackRepository(gdb)
	statsRepo := statsadapters.NewStatsRepository(gdb)

	// Usecase
	auth := di.NewAuth(cfg, userRepo)
	locationUC := locationsusecase.NewLocationUsecase(locationRepo)
	eventUC := eventsusecase.NewEventUsecase(eventRepo)
	feedbackUC := feedbackusecase.NewFeedbackUsecase(feedbackRepo)
	statsUC := statsusecase.NewStatsUsecase(statsRepo)
	dashboardUC := statsusecase.NewDashboardUsecase(
		locationsadapters.NewLocationRepository(gdb), eventRepo, feedbackRepo, userRepo)

	checker := health.NewChecker(sqlDB, health.NewCache(cfg.HealthCacheTTL), health.Settings{
		Environment:         cfg.Env,
		Production:          cfg.IsProduction(),
		HasJWTSecret:        !cfg.UsingFallbackSecret,
		HasDatabaseURL:      cfg.DB.HasURL(),
		HasAdminCredentials: cfg.HasAdminCredentials(),
	})

	if _, err := auth.Usecase.BootstrapAdmin(ctx); err != nil {
		slog.Error("failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	// ルータ生成
	engine := router.NewRouter(router.Handlers{
		Auth:      auth.Handler,
		Locations: locationshandler.NewLocationHandler(locationUC),
		Events:    eventshandler.NewEventHandler(eventUC),
		Feedback:  feedbackhandler.NewFeedbackHandler(feedbackUC),
		Stats:     statshandler.NewStatsHandler(statsUC, dashboardUC),
		Health:    platformhandler.NewHealthHandler(checker),
	}, auth.Authenticator, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}
