// Package handler はstatsフィーチャーと管理者ダッシュボードのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemap_backend/internal/feature/stats/domain/entity"
	"wastemap_backend/internal/feature/stats/transport/http/dto"
	"wastemap_backend/internal/feature/stats/usecase"
	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/httpx"
)

// StatsUsecase は統計値のユースケースを定義します。
type StatsUsecase interface {
	Get(ctx context.Context) (*entity.Stats, error)
	Update(ctx context.Context, patch usecase.StatsPatch) (*entity.Stats, error)
}

// DashboardUsecase は管理者ダッシュボードのユースケースを定義します。
type DashboardUsecase interface {
	Get(ctx context.Context) (*usecase.Dashboard, error)
}

// StatsHandler は統計値とダッシュボードのHTTPリクエストを処理します。
type StatsHandler struct {
	stats     StatsUsecase
	dashboard DashboardUsecase
}

// NewStatsHandler はStatsHandlerの新しいインスタンスを生成します。
func NewStatsHandler(stats StatsUsecase, dashboard DashboardUsecase) *StatsHandler {
	return &StatsHandler{stats: stats, dashboard: dashboard}
}

// Get は統計値を返します。未登録の場合はデフォルト値を返します。
func (h *StatsHandler) Get(c *gin.Context) {
	s, err := h.stats.Get(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Update は統計値を更新します（管理者のみ）。
func (h *StatsHandler) Update(c *gin.Context) {
	var req dto.UpdateStatsReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	s, err := h.stats.Update(c.Request.Context(), req.ToPatch())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("stats updated", "disposal_points", s.DisposalPoints)
	c.JSON(http.StatusOK, s)
}

// Dashboard は管理者向けの集計を返します（管理者のみ）。
func (h *StatsHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Get(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
