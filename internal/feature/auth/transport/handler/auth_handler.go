// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemap_backend/internal/feature/auth/transport/http/dto"
	"wastemap_backend/internal/feature/auth/usecase"
	"wastemap_backend/internal/platform/apperr"
	"wastemap_backend/internal/platform/httpx"
	jwtmw "wastemap_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンを発行します。
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201で {user, token} を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := httpx.BindJSON(c, &req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		apperr.Respond(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		apperr.Respond(c, err)
		return
	}

	slog.Info("user registration successful", "email", req.Email, "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{User: dto.FromUser(res.User), Token: res.Token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（失敗理由は公開しない）
// - 認証成功時は200で {user, token} を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := httpx.BindJSON(c, &req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		apperr.Respond(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		apperr.Respond(c, err)
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{User: dto.FromUser(res.User), Token: res.Token})
}

// Logout はクライアント側でのトークン破棄を前提とした確認応答を返します。
// サーバーはセッション状態を保持しないため、失効処理はありません。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageRes{Message: "logged out successfully"})
}

// CurrentUser は任意認証ミドルウェアが解決したユーザーを返します。
// 匿名の場合は401を返却します。
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	id := jwtmw.IdentityFrom(c)
	if !id.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(id.User))
}
