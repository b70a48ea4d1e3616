package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 1, UserRoleID: RoleAdmin}

	tests := []struct {
		name   string
		path   string
		header string
		auth   stubAuthenticator
		status int
	}{
		{name: "healthcheck é público", path: "/healthcheck", status: http.StatusNoContent},
		{name: "metrics é público", path: "/metrics", status: http.StatusNoContent},
		{name: "sem cabeçalho", path: "/v1/optimizations", status: http.StatusUnauthorized},
		{name: "sem Bearer", path: "/v1/optimizations", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "token inválido", path: "/v1/optimizations", header: "Bearer x", auth: stubAuthenticator{err: authenticating.ErrInvalidToken}, status: http.StatusUnauthorized},
		{name: "token expirado", path: "/v1/optimizations", header: "Bearer x", auth: stubAuthenticator{err: authenticating.ErrExpiredToken}, status: http.StatusUnauthorized},
		{name: "token válido", path: "/v1/optimizations", header: "Bearer x", auth: stubAuthenticator{claims: claims}, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredTokenCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()

	AuthMiddleware(stubAuthenticator{err: authenticating.ErrExpiredToken})(okHandler()).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), apiErrors.ErrExpiredToken)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		claims *domain.Claims
		status int
	}{
		{name: "admin", claims: &domain.Claims{UserRoleID: RoleAdmin}, status: http.StatusNoContent},
		{name: "cliente", claims: &domain.Claims{UserRoleID: RoleClient}, status: http.StatusForbidden},
		{name: "sem claims", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/blob-cleanup/run", nil)
			rec := httptest.NewRecorder()

			handler := AuthMiddleware(stubAuthenticator{claims: tt.claims})(AdminOnly()(okHandler()))
			if tt.claims != nil {
				req.Header.Set("Authorization", "Bearer x")
			} else {
				handler = AdminOnly()(okHandler())
			}
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/optimizations", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	Cors()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()

	Cors()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/optimizations/x/download", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
