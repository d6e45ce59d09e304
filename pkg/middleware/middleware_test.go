package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"stayease/pkg/logger"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	current := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "keys are counted separately")
	assert.True(t, limiter.Allow(""), "an empty key is never limited")

	current = current.Add(61 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))

	limiter.Stop()
}

func TestRateLimit_OnlyCountsRoute(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, RouteKey(http.MethodPost, "/api/v1/session", "/api/v1/register"), logger.Discard())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/session"))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/api/v1/session"))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/session"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/bookings"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/register"), "each route has its own budget")
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/api/v1/register"))
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))

	send := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set(HeaderIdempotencyKey, key)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send("/api/v1/bookings", "abc")
	second := send("/api/v1/bookings", "abc")

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), calls.Load())

	send("/api/v1/bookings/id/1/cancel", "abc")
	assert.Equal(t, int32(2), calls.Load(), "keys are scoped to the route")
}

func TestIdempotency_DoesNotCacheFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(HeaderIdempotencyKey, "abc")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestContentTypeValidation(t *testing.T) {
	handler := ContentTypeValidation(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{"json body", http.MethodPost, `{}`, "application/json; charset=utf-8", http.StatusOK},
		{"form body", http.MethodPost, `a=b`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"empty post", http.MethodPost, "", "", http.StatusOK},
		{"get", http.MethodGet, "", "text/plain", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, "/api/v1/bookings", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	handler := MaxRequestSize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"far too long"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRequestTimeout(t *testing.T) {
	handler := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request timeout")
}

func TestRecovery_HidesPanic(t *testing.T) {
	handler := Recovery(logger.Discard())(RequestTimeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRequestLogging_RequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(logger.Discard())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)
	assert.Equal(t, given, rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", seen)
}

type fixedAuth bool

func (a fixedAuth) Authenticated() bool { return bool(a) }

func TestRequireSession(t *testing.T) {
	next := func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}

	rec := httptest.NewRecorder()
	RequireSession(fixedAuth(false))(next)(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	RequireSession(fixedAuth(true))(next)(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
