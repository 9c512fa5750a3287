// Package handler はfeedbackフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemap_backend/internal/feature/feedback/domain/entity"
	"wastemap_backend/internal/feature/feedback/transport/http/dto"
	"wastemap_backend/internal/feature/feedback/usecase"
	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/httpx"
)

// FeedbackUsecase はフィードバック操作のユースケースを定義します。
type FeedbackUsecase interface {
	Create(ctx context.Context, in usecase.CreateFeedbackInput) (*entity.Feedback, error)
	List(ctx context.Context) ([]entity.Feedback, error)
	UpdateStatus(ctx context.Context, id int64, status entity.Status, response string) (*entity.Feedback, error)
}

// FeedbackHandler はフィードバック関連のHTTPリクエストを処理します。
type FeedbackHandler struct {
	uc FeedbackUsecase
}

// NewFeedbackHandler はFeedbackHandlerの新しいインスタンスを生成します。
func NewFeedbackHandler(uc FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// Create は訪問者からのフィードバックを受け付けます（認証不要）。
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	f, err := h.uc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("feedback received", "feedback_id", f.ID, "type", f.FeedbackType, "anonymous", f.IsAnonymous)
	c.JSON(http.StatusCreated, f)
}

// List は新しい順にすべてのフィードバックを返します（管理者のみ）。
func (h *FeedbackHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus はステータスと管理者の返答を更新します（管理者のみ）。
// - 不正なステータスは400を返却
// - 存在しないIDは404を返却
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var req dto.UpdateStatusReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	f, err := h.uc.UpdateStatus(c.Request.Context(), id, entity.Status(req.Status), req.AdminResponse)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
