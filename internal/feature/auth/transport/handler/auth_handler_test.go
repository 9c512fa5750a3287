package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastemap_backend/internal/feature/auth/domain/entity"
	"wastemap_backend/internal/feature/auth/usecase"
	"wastemap_backend/internal/platform/apperr"
	jwtmw "wastemap_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	LoginFunc    func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, apperr.E(apperr.Storage, "mock", nil)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, apperr.E(apperr.InvalidCredentials, "mock", usecase.ErrInvalidCredentials)
}

func hashOf(s string) *string { return &s }

func alice() *entity.User {
	return &entity.User{ID: "u-1", Email: "alice@example.com", Password: hashOf("$2a$12$secret"), Role: entity.RoleUser}
}

func postJSON(router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		requestBody      gin.H
		mockRegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
		expectedStatus   int
		expectedError    string
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"email": "alice@example.com", "password": "Secret123", "firstName": "Alice"},
			mockRegisterFunc: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				if in.FirstName != "Alice" {
					return nil, apperr.E(apperr.Validation, "", nil)
				}
				return &usecase.AuthResult{User: alice(), Token: "tok"}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "Secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Field validation for 'Email' failed on the 'email' tag",
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "alice@example.com", "password": "12345"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Field validation for 'Password' failed on the 'min' tag",
		},
		{
			name:           "failure: password longer than bcrypt accepts",
			requestBody:    gin.H{"email": "alice@example.com", "password": strings.Repeat("a", 73)},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Field validation for 'Password' failed on the 'max' tag",
		},
		{
			name:        "failure: duplicate email (usecase error)",
			requestBody: gin.H{"email": "existing@example.com", "password": "Secret123"},
			mockRegisterFunc: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
				return nil, apperr.E(apperr.DuplicateEmail, "auth.Register", usecase.ErrEmailAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "user already exists with this email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mockUC := &mockAuthUsecase{RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				called = true
				return tt.mockRegisterFunc(ctx, in)
			}}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/register", handler.Register)

			w := postJSON(router, "/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.mockRegisterFunc != nil, called, "usecase call mismatch")

			if tt.expectedError != "" {
				var body apperr.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Contains(t, body.Error, tt.expectedError)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "tok", body["token"])
			user := body["user"].(map[string]any)
			assert.Equal(t, "user", user["role"])
			assert.NotContains(t, user, "password")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "alice@example.com", "password": "Secret123"},
			mockLoginFunc: func(context.Context, string, string) (*usecase.AuthResult, error) {
				return &usecase.AuthResult{User: alice(), Token: "tok"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "alice@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password",
		},
		{
			name:        "failure: invalid credentials",
			requestBody: gin.H{"email": "alice@example.com", "password": "wrong"},
			mockLoginFunc: func(context.Context, string, string) (*usecase.AuthResult, error) {
				return nil, apperr.E(apperr.InvalidCredentials, "auth.Login", usecase.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "invalid email or password",
		},
		{
			name:        "failure: storage error hides details",
			requestBody: gin.H{"email": "alice@example.com", "password": "Secret123"},
			mockLoginFunc: func(context.Context, string, string) (*usecase.AuthResult, error) {
				return nil, apperr.E(apperr.Storage, "auth.Login", assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})

			router := gin.New()
			router.POST("/auth/login", handler.Login)

			w := postJSON(router, "/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var body apperr.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Contains(t, body.Error, tt.expectedError)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "tok", body["token"])
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/auth/logout", NewAuthHandler(&mockAuthUsecase{}).Logout)

	w := postJSON(router, "/auth/logout", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"logged out successfully"}`, w.Body.String())
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		identity       *jwtmw.Identity
		expectedStatus int
	}{
		{"no identity attached", nil, http.StatusUnauthorized},
		{"anonymous", &jwtmw.Identity{State: jwtmw.Anonymous}, http.StatusUnauthorized},
		{"authenticated", &jwtmw.Identity{State: jwtmw.Authenticated, User: alice()}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{})

			router := gin.New()
			router.GET("/auth/user", func(c *gin.Context) {
				if tt.identity != nil {
					c.Set(jwtmw.ContextIdentity, *tt.identity)
				}
			}, handler.CurrentUser)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/user", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "u-1", body["id"])
				assert.NotContains(t, body, "password")
			}
		})
	}
}
