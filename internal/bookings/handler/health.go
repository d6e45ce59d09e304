package handler

import (
	"context"
	"net/http"
	"time"

	httputil "stayease/pkg/http"
	"stayease/pkg/kafka"
	"stayease/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type MetricsSource interface {
	Metrics() kafka.MetricsSnapshot
}

type HealthResponse struct {
	Status       string                 `json:"status"`
	Upstream     string                 `json:"upstream,omitempty"`
	Invalidation *kafka.MetricsSnapshot `json:"invalidation,omitempty"`
}

type HealthHandler struct {
	upstream Pinger
	metrics  MetricsSource
	log      *logger.Logger
}

// NewHealthHandler reports invalidation metrics only when metrics is non-nil.
func NewHealthHandler(upstream Pinger, metrics MetricsSource, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		metrics:  metrics,
		log:      log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := HealthResponse{Status: "ok"}
	if h.metrics != nil {
		snapshot := h.metrics.Metrics()
		resp.Invalidation = &snapshot
	}
	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.upstream.Ping(ctx); err != nil {
		h.log.Error("Upstream health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Upstream: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Upstream: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
