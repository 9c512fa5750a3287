package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"wastemap_backend/internal/feature/auth/domain/entity"
	"wastemap_backend/internal/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key"

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserLoader is a function-field mock of UserLoader.
type mockUserLoader struct {
	CurrentUserFunc func(ctx context.Context, id string) (*entity.User, error)
}

func (m *mockUserLoader) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, id)
	}
	return nil, apperr.E(apperr.NotFound, "mock", errors.New("user not found"))
}

// usersOf returns a loader that knows exactly the given users.
func usersOf(users ...*entity.User) *mockUserLoader {
	return &mockUserLoader{
		CurrentUserFunc: func(_ context.Context, id string) (*entity.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, apperr.E(apperr.NotFound, "mock", errors.New("user not found"))
		},
	}
}

var (
	testUser  = &entity.User{ID: "u-1", Email: "alice@example.com", Role: entity.RoleUser}
	testAdmin = &entity.User{ID: "a-1", Email: "admin@uop.ac.lk", Role: entity.RoleAdmin}
)

func newTestContext(authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c, w
}

func issue(t *testing.T, svc *TokenService, u *entity.User) string {
	t.Helper()
	tok, err := svc.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// TestRequireAuth_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestRequireAuth_MissingBearerToken(t *testing.T) {
	auth := NewAuthenticator(NewTokenService(testSecret, time.Hour), usersOf(testUser))

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
		{"empty token", "Bearer    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(tt.authHeader)

			auth.RequireAuth()(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestRequireAuth_InvalidToken は不正なトークン（改ざん・期限切れ等）で403が返されることを検証します。
func TestRequireAuth_InvalidToken(t *testing.T) {
	auth := NewAuthenticator(NewTokenService(testSecret, time.Hour), usersOf(testUser))

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": testUser.ID,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	noneStr, _ := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createToken("wrong-secret", testUser.ID, time.Hour)},
		{"expired token", createToken(testSecret, testUser.ID, -time.Hour)},
		{"none algorithm", noneStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("Bearer " + tt.token)

			auth.RequireAuth()(c)

			if w.Code != http.StatusForbidden {
				t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
			}
			if _, exists := c.Get(ContextIdentity); exists {
				t.Error("expected no identity in context")
			}
		})
	}
}

// TestRequireAuth_UserGone は有効なトークンでもユーザーが削除済みなら403が返されることを検証します。
func TestRequireAuth_UserGone(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	auth := NewAuthenticator(svc, usersOf())

	c, w := newTestContext("Bearer " + issue(t, svc, testUser))
	auth.RequireAuth()(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

// TestRequireAuth_StorageFailure はユーザー取得時のストレージ障害が500になり、詳細が漏れないことを検証します。
func TestRequireAuth_StorageFailure(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	auth := NewAuthenticator(svc, &mockUserLoader{
		CurrentUserFunc: func(context.Context, string) (*entity.User, error) {
			return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
		},
	})

	c, w := newTestContext("Bearer " + issue(t, svc, testUser))
	auth.RequireAuth()(c)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if got := w.Body.String(); got != `{"error":"internal server error"}` {
		t.Errorf("unexpected body %s", got)
	}
}

// TestRequireAuth_ValidToken は有効なトークンでリクエストが通過し、ストレージから読み直したユーザーが設定されることを検証します。
func TestRequireAuth_ValidToken(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	// The token says "user" but the stored record was promoted since.
	promoted := &entity.User{ID: testUser.ID, Email: testUser.Email, Role: entity.RoleAdmin}
	auth := NewAuthenticator(svc, usersOf(promoted))

	c, w := newTestContext("Bearer " + issue(t, svc, testUser))
	auth.RequireAuth()(c)

	if c.IsAborted() {
		t.Fatalf("expected request not to be aborted, response: %s", w.Body.String())
	}

	id := IdentityFrom(c)
	if !id.IsAuthenticated() {
		t.Fatal("expected authenticated identity")
	}
	if id.User.Role != entity.RoleAdmin {
		t.Errorf("expected role loaded from storage, got %q", id.User.Role)
	}
	if userID := c.GetString(ContextUserID); userID != testUser.ID {
		t.Errorf("expected userID %q, got %q", testUser.ID, userID)
	}
}

// TestOptionalAuth_NeverAborts は任意認証が不正なトークンでも中断せず匿名として扱うことを検証します。
func TestOptionalAuth_NeverAborts(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	failing := &mockUserLoader{
		CurrentUserFunc: func(context.Context, string) (*entity.User, error) {
			return nil, errors.New("db down")
		},
	}

	tests := []struct {
		name   string
		header string
		users  UserLoader
		want   AuthState
	}{
		{"no header", "", usersOf(testUser), Anonymous},
		{"garbage token", "Bearer garbage", usersOf(testUser), Anonymous},
		{"expired token", "Bearer " + createToken(testSecret, testUser.ID, -time.Hour), usersOf(testUser), Anonymous},
		{"user gone", "Bearer " + issue(t, svc, testUser), usersOf(), Anonymous},
		{"storage failure", "Bearer " + issue(t, svc, testUser), failing, Anonymous},
		{"valid token", "Bearer " + issue(t, svc, testUser), usersOf(testUser), Authenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(tt.header)

			NewAuthenticator(svc, tt.users).OptionalAuth()(c)

			if c.IsAborted() {
				t.Fatalf("expected request not to be aborted, got %d", w.Code)
			}
			id := IdentityFrom(c)
			if id.State != tt.want {
				t.Errorf("expected state %v, got %v", tt.want, id.State)
			}
			if tt.want == Anonymous && id.User != nil {
				t.Error("expected no user for anonymous identity")
			}
		})
	}
}

// TestIdentityFrom_Default はミドルウェア未適用時に匿名が返ることを検証します。
func TestIdentityFrom_Default(t *testing.T) {
	c, _ := newTestContext("")

	id := IdentityFrom(c)
	if id.State != Anonymous || id.IsAuthenticated() {
		t.Errorf("expected anonymous identity, got %+v", id)
	}
}

// TestRequireRole は管理者ルートでのステータスコード（401/403/200）を検証します。
func TestRequireRole(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	auth := NewAuthenticator(svc, usersOf(testUser, testAdmin))

	router := gin.New()
	router.GET("/admin", auth.RequireAuth(), auth.RequireRole(entity.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"non-admin token", "Bearer " + issue(t, svc, testUser), http.StatusForbidden},
		{"admin token", "Bearer " + issue(t, svc, testAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

// TestRequireRole_Anonymous は認証ミドルウェアなしで呼ばれた場合に401が返ることを検証します。
func TestRequireRole_Anonymous(t *testing.T) {
	auth := NewAuthenticator(NewTokenService(testSecret, time.Hour), usersOf())

	c, w := newTestContext("")
	auth.RequireRole(entity.RoleAdmin)(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
