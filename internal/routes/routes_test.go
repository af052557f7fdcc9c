package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/01moynul/ytgenius-golang/internal/generation"
	"github.com/01moynul/ytgenius-golang/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type rejectAll struct{}

func (rejectAll) Resolve(context.Context, string) (*auth.Identity, error) {
	return nil, auth.ErrInvalidToken
}

func newRouter(origin string) *gin.Engine {
	svc := generation.NewService(generation.Deps{}, generation.Options{})
	h := handlers.New(svc, nil, nil)
	return SetupRouter(h, Options{Resolver: rejectAll{}, CORSAllowOrigin: origin})
}

func TestPreflight(t *testing.T) {
	router := newRouter("")

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSWithConfiguredOrigin(t *testing.T) {
	router := newRouter("https://app.example.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutes(t *testing.T) {
	router := newRouter("")

	tests := []struct {
		method, path string
		wantStatus   int
	}{
		// No datastore configured.
		{http.MethodGet, "/api/health", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/api/generate", http.StatusUnauthorized},
		{http.MethodGet, "/api/profile", http.StatusUnauthorized},
		{http.MethodGet, "/api/history", http.StatusUnauthorized},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			req.Header.Set("Authorization", "Bearer whatever")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
