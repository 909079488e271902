package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Backend fetch metrics
	backendFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "backend",
			Name:      "fetches_total",
			Help:      "Total number of backend collection fetches",
		},
		[]string{"kind", "outcome"},
	)

	backendFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "console",
			Subsystem: "backend",
			Name:      "fetch_duration_seconds",
			Help:      "Backend fetch duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	// Incident workflow metrics
	incidentUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "workflow",
			Name:      "incident_updates_total",
			Help:      "Total number of incident status/assignment updates",
		},
		[]string{"status", "outcome"},
	)

	// Lab scoring metrics
	answerSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "lab",
			Name:      "answer_submissions_total",
			Help:      "Total number of graded answer submissions",
		},
		[]string{"kind", "result"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "console",
			Subsystem: "lab",
			Name:      "active_sessions",
			Help:      "Number of active scenario sessions",
		},
	)
)

// RecordFetch records a backend collection fetch
func RecordFetch(kind, outcome string, duration time.Duration) {
	backendFetchesTotal.WithLabelValues(kind, outcome).Inc()
	backendFetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordIncidentUpdate records an incident workflow update attempt
func RecordIncidentUpdate(status, outcome string) {
	incidentUpdatesTotal.WithLabelValues(status, outcome).Inc()
}

// RecordSubmission records a graded answer or challenge submission
func RecordSubmission(kind string, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	answerSubmissionsTotal.WithLabelValues(kind, result).Inc()
}

// SessionOpened increments the active session gauge
func SessionOpened() {
	activeSessions.Inc()
}

// SessionClosed decrements the active session gauge
func SessionClosed() {
	activeSessions.Dec()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
