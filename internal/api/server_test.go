package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-compare-api/internal/api/handler"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

type tokenAuthenticator struct {
	tokens map[string]*domain.Claims
}

func (a tokenAuthenticator) LoginUser(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func (a tokenAuthenticator) GetUserProfile(_ context.Context, userID int) (*domain.User, error) {
	return &domain.User{ID: userID}, nil
}

func (a tokenAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	claims, ok := a.tokens[token]
	if !ok {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

func newTestHandler() http.Handler {
	log.SetupTestLogger()

	cfg := &config.Config{
		App:      config.App{AllowedOrigins: []string{"http://localhost:3000"}},
		Analysis: config.Analysis{HighGrowth: 20, ModerateGrowth: 5, MildDecline: -5, ModerateDecline: -20, DefaultWindow: 1, MinYear: 2014},
		Upload:   config.Upload{MaxBytes: 1 << 20},
	}
	auth := tokenAuthenticator{tokens: map[string]*domain.Claims{
		"admin":   {UserID: 1, UserRoleID: domain.RoleAdmin},
		"analyst": {UserID: 2, UserRoleID: domain.RoleAnalyst},
	}}
	comparer := comparing.NewService(nil, nil, nil, nil, nil, cfg)

	return NewHandler(cfg, comparer, auth, handler.NewCronJobServices(nil))
}

func TestServerRoutes(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "healthcheck é público", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "sem token", method: http.MethodGet, path: "/v1/thresholds/default", wantStatus: http.StatusUnauthorized},
		{name: "token inválido", method: http.MethodGet, path: "/v1/thresholds/default", token: "x", wantStatus: http.StatusUnauthorized},
		{name: "analista acessa limiares", method: http.MethodGet, path: "/v1/thresholds/default", token: "analyst", wantStatus: http.StatusOK},
		{name: "analista não remove dataset", method: http.MethodDelete, path: "/v1/datasets/abc", token: "analyst", wantStatus: http.StatusForbidden},
		{name: "admin não remove arquivo monitorado", method: http.MethodDelete, path: "/v1/datasets/default", token: "admin", wantStatus: http.StatusBadRequest},
		{name: "cron inexistente", method: http.MethodPost, path: "/v1/cron/retention/run", token: "admin", wantStatus: http.StatusBadRequest},
		{name: "rota inexistente", method: http.MethodGet, path: "/v1/nada", token: "admin", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestServerCors(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodOptions, "/v1/datasets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
