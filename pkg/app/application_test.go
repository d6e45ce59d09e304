package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stayease/pkg/config"
	"stayease/pkg/contracts"
	"stayease/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func newTestApplication(t *testing.T) (*Application, *int) {
	t.Helper()

	cfg := config.FromEnv("test")
	cfg.Log = logger.Discard()
	cfg.LoginRateLimit = 2
	cfg.LoginRateWindow = time.Minute
	cfg.RequestTimeout = time.Second

	logins := 0
	health := contracts.RoutesFunc(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})
	agent := contracts.RoutesFunc(func(r *httprouter.Router) {
		r.POST("/api/v1/session", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			logins++
			w.WriteHeader(http.StatusOK)
		})
	})

	a := NewApplication()
	a.SetApp(cfg, health, agent)
	closed := false
	a.OnShutdown(func() { closed = true })
	t.Cleanup(func() {
		a.Stop()
		assert.True(t, closed)
	})
	return a, &logins
}

func login(a *Application, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestApplication_HealthBypassesAppStack(t *testing.T) {
	a, _ := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_LoginRateLimit(t *testing.T) {
	a, logins := newTestApplication(t)

	assert.Equal(t, http.StatusOK, login(a, "198.51.100.7:1000").Code)
	assert.Equal(t, http.StatusOK, login(a, "198.51.100.7:1001").Code)
	assert.Equal(t, http.StatusTooManyRequests, login(a, "198.51.100.7:1002").Code)
	assert.Equal(t, http.StatusOK, login(a, "198.51.100.8:1000").Code)
	assert.Equal(t, 3, *logins)
}

func TestApplication_RejectsNonJSONBody(t *testing.T) {
	a, logins := newTestApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`email=a`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Zero(t, *logins)
}

func TestApplication_IdempotentReplay(t *testing.T) {
	a, logins := newTestApplication(t)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "retry-1")
		req.RemoteAddr = "203.0.113.1:1000"
		a.Handler().ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, *logins)
}
