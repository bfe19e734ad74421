package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	httputil "assetbook/pkg/http"
	kafka_middleware "assetbook/pkg/kafka/middleware"
	"assetbook/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PublisherStats struct {
	Published int64  `json:"published"`
	Failed    int64  `json:"failed"`
	AvgTime   string `json:"avgPublishDuration"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Database  string          `json:"database,omitempty"`
	Publisher *PublisherStats `json:"publisher,omitempty"`
}

type HealthHandler struct {
	db      Pinger
	metrics *kafka_middleware.Metrics
	log     *logger.Logger
}

// NewHealthHandler builds the liveness and readiness endpoints. metrics may be
// nil when intents are not published to Kafka.
func NewHealthHandler(db Pinger, metrics *kafka_middleware.Metrics, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		metrics: metrics,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	stats := h.publisherStats()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unavailable",
			Database:  "error",
			Publisher: stats,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Database:  "ok",
		Publisher: stats,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) publisherStats() *PublisherStats {
	if h.metrics == nil {
		return nil
	}
	snapshot := h.metrics.Snapshot()
	return &PublisherStats{
		Published: snapshot.Published,
		Failed:    snapshot.Failed,
		AvgTime:   snapshot.AvgPublishDuration.String(),
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
