// Package handler はeventsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemap_backend/internal/feature/events/domain/entity"
	"wastemap_backend/internal/feature/events/transport/http/dto"
	"wastemap_backend/internal/feature/events/usecase"
	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/httpx"
	"wastemap_backend/internal/platform/metrics"
)

// joinRejectedMessage は満員と未検出を区別しない参加失敗メッセージです。
const joinRejectedMessage = "cannot join event - full or not found"

// EventUsecase はイベント操作のユースケースを定義します。
type EventUsecase interface {
	List(ctx context.Context) ([]entity.Event, error)
	Create(ctx context.Context, in usecase.CreateEventInput) (*entity.Event, error)
	Update(ctx context.Context, id int64, patch usecase.EventPatch) (*entity.Event, error)
	Delete(ctx context.Context, id int64) error
	Join(ctx context.Context, id int64) (*entity.Event, error)
}

// EventHandler はイベント関連のHTTPリクエストを処理します。
type EventHandler struct {
	events EventUsecase
}

// NewEventHandler はEventHandlerの新しいインスタンスを生成します。
func NewEventHandler(events EventUsecase) *EventHandler {
	return &EventHandler{events: events}
}

// List は開催日の昇順でアクティブなイベントを返します。
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Create はイベントを作成します（管理者のみ）。
// - バリデーションエラー時は400を返却
// - 成功時は201で作成したイベントを返却
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	e, err := h.events.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("event created", "event_id", e.ID, "title", e.Title)
	c.JSON(http.StatusCreated, e)
}

// Update はイベントを部分更新します（管理者のみ）。
func (h *EventHandler) Update(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var req dto.UpdateEventReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	e, err := h.events.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Delete はイベントを論理削除します（管理者のみ）。
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("event deleted", "event_id", id)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "event deleted successfully"})
}

// Join はイベントへの参加を受け付けます。
// 満員・未検出のいずれも400で同じメッセージを返却します。
func (h *EventHandler) Join(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	e, err := h.events.Join(c.Request.Context(), id)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.CapacityExceeded:
			metrics.EventJoinRejected.WithLabelValues("full").Inc()
		case apperr.NotFound:
			metrics.EventJoinRejected.WithLabelValues("not_found").Inc()
		default:
			apperr.Respond(c, err)
			return
		}
		slog.Info("event join rejected", "event_id", id, "reason", apperr.KindOf(err).String())
		apperr.RespondMessage(c, apperr.E(apperr.Validation, "events.Join", err), joinRejectedMessage)
		return
	}

	c.JSON(http.StatusOK, e)
}
