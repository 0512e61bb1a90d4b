// Package metrics holds the Prometheus collectors for the Arke MCP server.
// They register with the default registry and are served on /metrics when
// the MCP server runs over HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arke_gateway_requests_total",
			Help: "Total number of requests made to remote Arke services",
		},
		[]string{"endpoint", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arke_gateway_request_duration_seconds",
			Help:    "Duration of requests to remote Arke services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ComponentFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arke_component_fetch_failures_total",
			Help: "Total number of entity components that failed to fetch",
		},
		[]string{"component"},
	)

	ToolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arke_tool_invocations_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool", "outcome"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// OutcomeOf maps an error to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
