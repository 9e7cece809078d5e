package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors shared by the HTTP and MCP transports.
type Metrics struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ToolCalls        *prometheus.CounterVec
	DecisionsApplied prometheus.Counter
	PatchItemsSkip   prometheus.Counter
}

// NewMetrics creates and registers the figspec collectors plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "figspec_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "figspec_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "figspec_mcp_tool_calls_total",
				Help: "Total number of MCP tool calls by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		DecisionsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "figspec_decisions_applied_total",
			Help: "Total number of decisions written by apply",
		}),
		PatchItemsSkip: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "figspec_patch_items_skipped_total",
			Help: "Total number of patch items skipped by apply",
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.ToolCalls,
		m.DecisionsApplied,
		m.PatchItemsSkip,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveApply records the outcome of one apply call. A nil receiver is a no-op.
func (m *Metrics) ObserveApply(applied, skipped int) {
	if m == nil {
		return
	}
	m.DecisionsApplied.Add(float64(applied))
	m.PatchItemsSkip.Add(float64(skipped))
}

// ObserveTool counts one MCP tool call. A nil receiver is a no-op.
func (m *Metrics) ObserveTool(tool string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
