package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inkasso/backend/internal/infrastructure/auth"
	"github.com/inkasso/backend/internal/infrastructure/config"
	"github.com/inkasso/backend/internal/interfaces/http/handler"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine() *gin.Engine {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-key-0123456789ab",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})

	return New(Config{
		JWTService:  jwtService,
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: 1 << 20,
		System:      handler.NewSystemHandler(nil),
		Auth:        handler.NewAuthHandler(nil),
		Tenants:     handler.NewTenantHandler(nil),
		Debtors:     handler.NewDebtorHandler(nil),
		Cases:       handler.NewCaseHandler(nil),
		Assignments: handler.NewAssignmentHandler(nil),
	})
}

func TestRouter_HealthIsPublic(t *testing.T) {
	engine := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_ReadyIsPublic(t *testing.T) {
	engine := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginIsPublic(t *testing.T) {
	engine := newTestEngine()

	// Malformed body reaches the handler instead of being rejected by auth
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	engine := newTestEngine()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/tenants"},
		{http.MethodPost, "/api/v1/tenants"},
		{http.MethodGet, "/api/v1/tenants/00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/api/v1/tenants/00000000-0000-0000-0000-000000000001/agents"},
		{http.MethodGet, "/api/v1/debtors"},
		{http.MethodGet, "/api/v1/cases"},
		{http.MethodPost, "/api/v1/cases/00000000-0000-0000-0000-000000000001/advance"},
		{http.MethodGet, "/api/v1/cases/00000000-0000-0000-0000-000000000001/history"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	engine := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
