package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastemap_backend/internal/feature/stats/domain/entity"
	"wastemap_backend/internal/feature/stats/usecase"
	"wastemap_backend/internal/platform/apperr"
)

type mockStatsUsecase struct {
	GetFunc    func(ctx context.Context) (*entity.Stats, error)
	UpdateFunc func(ctx context.Context, patch usecase.StatsPatch) (*entity.Stats, error)
}

func (m *mockStatsUsecase) Get(ctx context.Context) (*entity.Stats, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	d := entity.Defaults()
	return &d, nil
}

func (m *mockStatsUsecase) Update(ctx context.Context, patch usecase.StatsPatch) (*entity.Stats, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, patch)
	}
	s := entity.Defaults()
	patch.Apply(&s)
	return &s, nil
}

type mockDashboardUsecase struct {
	GetFunc func(ctx context.Context) (*usecase.Dashboard, error)
}

func (m *mockDashboardUsecase) Get(ctx context.Context) (*usecase.Dashboard, error) {
	return m.GetFunc(ctx)
}

func newStatsRouter(s StatsUsecase, d DashboardUsecase) *gin.Engine {
	h := NewStatsHandler(s, d)
	r := gin.New()
	r.GET("/stats", h.Get)
	r.PUT("/stats", h.Update)
	r.GET("/admin/dashboard", h.Dashboard)
	return r
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatsHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := send(newStatsRouter(&mockStatsUsecase{}, nil), http.MethodGet, "/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "0T", got["monthlyWaste"])
	assert.Equal(t, "0%", got["recyclableRate"])
}

func TestStatsHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
	}{
		{"success", gin.H{"disposalPoints": 30, "monthlyWaste": "5T"}, http.StatusOK},
		{"negative points", gin.H{"disposalPoints": -3}, http.StatusBadRequest},
		{"wrong type", gin.H{"disposalPoints": "many"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newStatsRouter(&mockStatsUsecase{}, nil), http.MethodPut, "/stats", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestStatsHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		d := &mockDashboardUsecase{GetFunc: func(context.Context) (*usecase.Dashboard, error) {
			return &usecase.Dashboard{TotalLocations: 2, TotalUsers: 5}, nil
		}}

		w := send(newStatsRouter(&mockStatsUsecase{}, d), http.MethodGet, "/admin/dashboard", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.EqualValues(t, 2, got["totalLocations"])
		assert.EqualValues(t, 5, got["totalUsers"])
		assert.Contains(t, got, "recentFeedback")
		assert.Contains(t, got, "upcomingEvents")
	})

	t.Run("storage failure", func(t *testing.T) {
		d := &mockDashboardUsecase{GetFunc: func(context.Context) (*usecase.Dashboard, error) {
			return nil, apperr.E(apperr.Storage, "dashboard.Get", errors.New("db down"))
		}}

		w := send(newStatsRouter(&mockStatsUsecase{}, d), http.MethodGet, "/admin/dashboard", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
