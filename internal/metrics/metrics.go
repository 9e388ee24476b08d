// Package metrics defines the Prometheus instrumentation for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SplitCalculations counts split computations served, by division mode.
	SplitCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rachaconta_split_calculations_total",
		Help: "Number of bill split calculations served.",
	}, []string{"mode"})

	// SuggestionRequests counts AI tip suggestion requests by outcome
	// (ok, precondition_failed, missing_credential, provider_error,
	// validation_error, busy).
	SuggestionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rachaconta_suggestion_requests_total",
		Help: "Number of AI tip suggestion requests by outcome.",
	}, []string{"outcome"})

	// SuggestionDuration observes the provider round-trip latency.
	SuggestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rachaconta_suggestion_duration_seconds",
		Help:    "Latency of AI tip suggestion requests.",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
