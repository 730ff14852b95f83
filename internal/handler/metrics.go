package handler

import (
	"fmt"
	"net/http"

	"github.com/punchdeck/punchdeck/internal/metrics"
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

	writeMetric(w, "punchdeck_users_created_total %d\n", snap.UsersCreated)

	writeMetric(w, "punchdeck_events_recorded_total{type=\"in\"} %d\n", snap.EventsRecordedIn)
	writeMetric(w, "punchdeck_events_recorded_total{type=\"out\"} %d\n", snap.EventsRecordedOut)

	writeMetric(w, "punchdeck_scans_total{status=\"accepted\"} %d\n", snap.ScansAccepted)
	writeMetric(w, "punchdeck_scans_total{status=\"debounced\"} %d\n", snap.ScansDebounced)
	writeMetric(w, "punchdeck_scans_total{status=\"unknown_card\"} %d\n", snap.ScansUnknownCard)

	writeMetric(w, "punchdeck_presence_query_duration_seconds_count %d\n", snap.PresenceQueryCount)
	writeMetric(w, "punchdeck_presence_query_duration_seconds_sum %.6f\n", float64(snap.PresenceQueryTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
