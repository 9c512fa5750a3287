// Package router はginエンジンとルート定義を提供します。
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authentity "wastemap_backend/internal/feature/auth/domain/entity"
	authhandler "wastemap_backend/internal/feature/auth/transport/handler"
	eventshandler "wastemap_backend/internal/feature/events/transport/handler"
	feedbackhandler "wastemap_backend/internal/feature/feedback/transport/handler"
	locationshandler "wastemap_backend/internal/feature/locations/transport/handler"
	statshandler "wastemap_backend/internal/feature/stats/transport/handler"
	platformhandler "wastemap_backend/internal/platform/http/handler"
	jwtmw "wastemap_backend/internal/platform/jwt"
	"wastemap_backend/internal/platform/metrics"
)

// Handlers はルーターに登録する全ハンドラーです。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Locations *locationshandler.LocationHandler
	Events    *eventshandler.EventHandler
	Feedback  *feedbackhandler.FeedbackHandler
	Stats     *statshandler.StatsHandler
	Health    *platformhandler.HealthHandler
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
func NewRouter(h Handlers, authn *jwtmw.Authenticator, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), metrics.Middleware(), corsMiddleware(allowedOrigins))

	// 導通確認用
	for _, path := range []string{"/healthz", "/api/health"} {
		r.GET(path, h.Health.Health)
		r.HEAD(path, h.Health.Health)
		r.OPTIONS(path, h.Health.Health)
	}
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// 認証不要
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/user", authn.OptionalAuth(), h.Auth.CurrentUser)

	api.GET("/disposal-locations", h.Locations.List)
	api.GET("/events", h.Events.List)
	api.POST("/events/:id/join", h.Events.Join)
	api.POST("/feedback", h.Feedback.Create)
	api.GET("/stats", h.Stats.Get)

	// 管理者のみ
	admin := api.Group("")
	admin.Use(authn.RequireAuth(), authn.RequireRole(authentity.RoleAdmin))
	{
		admin.POST("/disposal-locations", h.Locations.Create)
		admin.PUT("/disposal-locations/:id", h.Locations.Update)
		admin.DELETE("/disposal-locations/:id", h.Locations.Delete)

		admin.POST("/events", h.Events.Create)
		admin.PUT("/events/:id", h.Events.Update)
		admin.DELETE("/events/:id", h.Events.Delete)

		admin.GET("/feedback", h.Feedback.List)
		admin.PUT("/feedback/:id", h.Feedback.UpdateStatus)

		admin.PUT("/stats", h.Stats.Update)
		admin.GET("/admin/dashboard", h.Stats.Dashboard)
	}

	return r
}

// corsMiddleware は許可オリジンに "*" が含まれる場合はすべて許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requestLogger はリクエストごとに1行の構造化ログを出力します。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			slog.Error("request", attrs...)
		case c.Writer.Status() >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Debug("request", attrs...)
		}
	}
}
