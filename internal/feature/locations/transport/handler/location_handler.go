package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemap_backend/internal/feature/locations/domain/entity"
	"wastemap_backend/internal/feature/locations/transport/http/dto"
	"wastemap_backend/internal/feature/locations/usecase"
	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/httpx"
)

// LocationUsecase は回収地点に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LocationUsecase interface {
	List(ctx context.Context, typ string) ([]entity.DisposalLocation, error)
	Create(ctx context.Context, in usecase.CreateLocationInput) (*entity.DisposalLocation, error)
	Update(ctx context.Context, id int64, patch usecase.LocationPatch) (*entity.DisposalLocation, error)
	Delete(ctx context.Context, id int64) error
}

// LocationHandler は回収地点に関するHTTPリクエストを処理します。
type LocationHandler struct {
	uc LocationUsecase
}

// NewLocationHandler は新しい LocationHandler を作成します。
func NewLocationHandler(uc LocationUsecase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// List は有効な回収地点の一覧を返します。?type= で種別を絞り込めます。
func (h *LocationHandler) List(c *gin.Context) {
	out, err := h.uc.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Create は回収地点を登録します（管理者のみ）。
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	l, err := h.uc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("disposal location created", "location_id", l.ID, "type", l.Type)
	c.JSON(http.StatusCreated, l)
}

// Update は回収地点を部分更新します（管理者のみ）。
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var req dto.UpdateLocationReq
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	l, err := h.uc.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// Delete は回収地点を論理削除します（管理者のみ）。
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err)
		return
	}

	slog.Info("disposal location deleted", "location_id", id)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "location deleted successfully"})
}
