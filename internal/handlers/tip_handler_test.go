package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citywatch/backend/internal/auth"
	"github.com/citywatch/backend/internal/models"
	"github.com/citywatch/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockTipService is a mock implementation of TipService
type mockTipService struct {
	tips         []models.TipListItem
	err          error
	sosAccountID int
	listedID     int
	updatedTipID int
	updatedState string
}

func (m *mockTipService) SubmitAnonymous(ctx context.Context, req *models.SubmitTipRequest) error {
	return m.err
}

func (m *mockTipService) SubmitSOS(ctx context.Context, accountID int, req *models.SubmitSOSRequest) error {
	m.sosAccountID = accountID
	return m.err
}

func (m *mockTipService) ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error) {
	m.listedID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.tips, nil
}

func (m *mockTipService) UpdateStatus(ctx context.Context, tipID int, status string) error {
	m.updatedTipID = tipID
	m.updatedState = status
	return m.err
}

func setupTipRouter(svc TipService) (chi.Router, *auth.TokenGenerator) {
	tg := auth.NewTokenGenerator("test-secret", 24*time.Hour)
	r := chi.NewRouter()
	NewTipHandler(svc, zap.NewNop()).RegisterRoutes(r,
		auth.Middleware(tg),
		auth.RoleMiddleware(tg, int(models.RolePolice)),
	)
	return r, tg
}

func TestTipHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockTipService
		expectedStatus int
	}{
		{
			name:           "created without authentication",
			svc:            &mockTipService{},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "validation failure",
			svc:            &mockTipService{err: services.ErrValidation},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTipRouter(tt.svc)

			rec := postJSON(t, router, "/tips/submit", models.SubmitTipRequest{
				Name:        "Jane Doe",
				Phone:       "5551234567",
				Time:        "2025-06-01 22:15",
				Location:    "5th and Main",
				Title:       "Vandalism",
				Description: "Broken shop window",
			})

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestTipHandler_List(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		router, _ := setupTipRouter(&mockTipService{})

		req := httptest.NewRequest(http.MethodGet, "/tips", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the caller's tips", func(t *testing.T) {
		svc := &mockTipService{tips: []models.TipListItem{
			{ID: 4, Time: "2025-06-01 22:15", Location: "12.34, 56.78", Status: "Pending"},
		}}
		router, tg := setupTipRouter(svc)
		token, err := tg.GenerateToken(42, int(models.RoleCitizen))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tips", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, svc.listedID)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		tips, ok := body["tips"].([]any)
		require.True(t, ok)
		assert.Len(t, tips, 1)
	})

	t.Run("empty listing stays an array", func(t *testing.T) {
		router, tg := setupTipRouter(&mockTipService{})
		token, err := tg.GenerateToken(42, int(models.RoleCitizen))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tips", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"tips":[]`)
	})
}

func TestTipHandler_SubmitSOS(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		router, _ := setupTipRouter(&mockTipService{})

		body, _ := json.Marshal(models.SubmitSOSRequest{Time: "2025-06-01 22:15"})
		req := httptest.NewRequest(http.MethodPost, "/tips/sos", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("submits for the authenticated account", func(t *testing.T) {
		svc := &mockTipService{}
		router, tg := setupTipRouter(svc)
		token, err := tg.GenerateToken(42, int(models.RoleCitizen))
		require.NoError(t, err)

		body, _ := json.Marshal(models.SubmitSOSRequest{
			Time:      "2025-06-01 22:15",
			Latitude:  12.34,
			Longitude: 56.78,
		})
		req := httptest.NewRequest(http.MethodPost, "/tips/sos", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 42, svc.sosAccountID)
	})
}

func TestTipHandler_UpdateStatus(t *testing.T) {
	t.Run("citizen is forbidden", func(t *testing.T) {
		router, tg := setupTipRouter(&mockTipService{})
		token, err := tg.GenerateToken(42, int(models.RoleCitizen))
		require.NoError(t, err)

		body, _ := json.Marshal(models.UpdateTipStatusRequest{Status: "Solved"})
		req := httptest.NewRequest(http.MethodPatch, "/tips/3/status", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("police updates a tip", func(t *testing.T) {
		svc := &mockTipService{}
		router, tg := setupTipRouter(svc)
		token, err := tg.GenerateToken(7, int(models.RolePolice))
		require.NoError(t, err)

		body, _ := json.Marshal(models.UpdateTipStatusRequest{Status: "Solved"})
		req := httptest.NewRequest(http.MethodPatch, "/tips/3/status", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, svc.updatedTipID)
		assert.Equal(t, "Solved", svc.updatedState)
	})

	t.Run("bad tip id", func(t *testing.T) {
		router, tg := setupTipRouter(&mockTipService{})
		token, err := tg.GenerateToken(7, int(models.RolePolice))
		require.NoError(t, err)

		body, _ := json.Marshal(models.UpdateTipStatusRequest{Status: "Solved"})
		req := httptest.NewRequest(http.MethodPatch, "/tips/abc/status", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
