package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apierrors "bikeshare/internal/errors"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	scrape       http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler serves registry, or reports metrics as unavailable when it is nil
func NewMetricsHandler(registry *prometheus.Registry, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	h := &MetricsHandler{errorHandler: errorHandler}
	if registry != nil {
		h.scrape = promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		})
	}
	return h
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.scrape == nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusServiceUnavailable,
			"SERVICE_UNAVAILABLE",
			"Metrics are disabled",
			map[string]interface{}{"setting": "telemetry.metrics"},
		))
		return
	}
	h.scrape.ServeHTTP(w, r)
}
