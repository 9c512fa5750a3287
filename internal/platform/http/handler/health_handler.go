// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"wastemap_backend/internal/platform/health"

	"github.com/gin-gonic/gin"
)

// HealthChecker はヘルスレポートを返します。
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// HealthHandler は /healthz と /api/health を処理します。
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler はHealthHandlerを生成します。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		report := h.checker.Check(c.Request.Context())
		status := http.StatusOK
		if !report.Healthy() {
			status = http.StatusInternalServerError
		}
		c.JSON(status, report)
	}
}
