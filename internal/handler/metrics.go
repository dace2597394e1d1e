package handler

import (
	"net/http"

	"github.com/newsroom/newsroom/internal/respond"
)

// MetricsHandler serves the metrics exposition endpoint.
type MetricsHandler struct {
	exposition http.Handler
}

// NewMetricsHandler creates a new MetricsHandler. A nil exposition handler
// makes the endpoint answer 503.
func NewMetricsHandler(exposition http.Handler) *MetricsHandler {
	return &MetricsHandler{exposition: exposition}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exposition == nil {
		respond.Message(w, http.StatusServiceUnavailable, "Metrics disabled", "no metrics registry configured")
		return
	}
	h.exposition.ServeHTTP(w, r)
}
