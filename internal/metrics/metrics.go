// Package metrics exposes Prometheus counters for sync requests, status polls
// and the transport circuit breaker.
//
// Metrics are registered on a private registry and served only when the
// --metrics-addr flag is set:
//
//	curl http://localhost:9464/metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric below.
var Registry = prometheus.NewRegistry()

var (
	// SyncRequests counts start/stop requests by outcome.
	SyncRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_requests_total",
			Help: "Sync start and stop requests by resource kind, operation and outcome",
		},
		[]string{"kind", "op", "outcome"},
	)

	// StatusPolls counts poll ticks by result: syncing, terminal or error.
	StatusPolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_status_polls_total",
			Help: "Sync status poll ticks by resource kind and result",
		},
		[]string{"kind", "result"},
	)

	// PollsActive is the number of live poll handles.
	PollsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_polls_active",
			Help: "Number of resources currently being polled",
		},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_circuit_breaker_state",
			Help: "Transport circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)
)

func init() {
	Registry.MustRegister(SyncRequests, StatusPolls, PollsActive, CircuitBreakerState)
}

// RecordRequest records the outcome of a start or stop request.
func RecordRequest(kind, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	SyncRequests.WithLabelValues(kind, op, outcome).Inc()
}

// RecordPoll records a single poll tick.
func RecordPoll(kind, result string) {
	StatusPolls.WithLabelValues(kind, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
