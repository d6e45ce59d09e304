package middleware

import (
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	apperrors "stayease/pkg/errors"
	httputil "stayease/pkg/http"
	"stayease/pkg/logger"
)

// KeyExtractor picks what a RateLimiter counts requests by.
type KeyExtractor func(r *http.Request) string

// RateLimiter allows limit requests per key within a sliding window.
type RateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor KeyExtractor
	now       func() time.Time
	log       *logger.Logger
	stopCh    chan struct{}
	once      sync.Once
}

func NewRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *RateLimiter {
	if extractor == nil {
		extractor = ClientIP
	}
	limiter := &RateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		now:       time.Now,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || rl.now().Sub(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
}

// Allow records a request for key and reports whether it is within the limit.
// An empty key is never limited.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

// RateLimit answers 429 to callers over the limit. Requests the extractor
// keys as "" are not counted.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiter.extractor(r)
			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"key", key,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.New(
					apperrors.CodeInFlight,
					"Too many attempts, try again later",
					http.StatusTooManyRequests,
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RouteKey limits only method on the given paths. Each path has its own
// budget per client address.
func RouteKey(method string, paths ...string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Method != method || !slices.Contains(paths, r.URL.Path) {
			return ""
		}
		return r.URL.Path + " " + ClientIP(r)
	}
}

// ClientIP keys requests by the caller's address without its port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
