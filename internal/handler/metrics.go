package handler

import (
	"fmt"
	"net/http"

	"github.com/usersvc/usersvc/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "usersvc_user_cache_lookups_total{result=\"hit\"} %d\n", snap.UserCacheHits)
	writeMetric(w, "usersvc_user_cache_lookups_total{result=\"miss\"} %d\n", snap.UserCacheMisses)
	writeMetric(w, "usersvc_cache_errors_total{op=\"get\"} %d\n", snap.CacheGetErrors)
	writeMetric(w, "usersvc_cache_errors_total{op=\"put\"} %d\n", snap.CachePutErrors)
	writeMetric(w, "usersvc_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "usersvc_store_duration_seconds_count %d\n", snap.StoreDurationCount)
	writeMetric(w, "usersvc_store_duration_seconds_sum %.6f\n", float64(snap.StoreDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
