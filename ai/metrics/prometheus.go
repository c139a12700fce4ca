// Package metrics provides Prometheus metrics export for the chat
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports chat pipeline metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// Chat metrics
	chatLatency  *prometheus.HistogramVec
	chatRequests *prometheus.CounterVec
	chatActive   prometheus.Gauge

	// Stream metrics
	streamEvents *prometheus.CounterVec

	// Tool call metrics
	toolCalls   *prometheus.CounterVec
	toolLatency *prometheus.HistogramVec

	// Routing cache metrics
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	// Provider metrics
	llmLatency *prometheus.HistogramVec
	llmErrors  *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.chatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aiagent",
			Subsystem: "chat",
			Name:      "latency_seconds",
			Help:      "Chat request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"intent"},
	)

	e.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total number of chat requests",
		},
		[]string{"intent", "status"},
	)

	e.chatActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aiagent",
			Subsystem: "chat",
			Name:      "active",
			Help:      "Number of chat requests currently streaming",
		},
	)

	e.streamEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "chat",
			Name:      "stream_events_total",
			Help:      "Total number of stream events emitted",
		},
		[]string{"type", "mode"},
	)

	e.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "tools",
			Name:      "calls_total",
			Help:      "Total number of tool calls",
		},
		[]string{"tool", "status"},
	)

	e.toolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aiagent",
			Subsystem: "tools",
			Name:      "latency_seconds",
			Help:      "Tool call latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"tool"},
	)

	e.cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "routing",
			Name:      "cache_hits_total",
			Help:      "Total number of routing cache hits",
		},
		[]string{"cache_type"},
	)

	e.cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "routing",
			Name:      "cache_misses_total",
			Help:      "Total number of routing cache misses",
		},
		[]string{"cache_type"},
	)

	e.llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aiagent",
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "Model request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"provider"},
	)

	e.llmErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiagent",
			Subsystem: "llm",
			Name:      "errors_total",
			Help:      "Total number of model request failures",
		},
		[]string{"provider"},
	)

	registry.MustRegister(
		e.chatLatency,
		e.chatRequests,
		e.chatActive,
		e.streamEvents,
		e.toolCalls,
		e.toolLatency,
		e.cacheHits,
		e.cacheMisses,
		e.llmLatency,
		e.llmErrors,
	)

	return e
}

// RecordChatRequest records a completed chat request.
func (e *PrometheusExporter) RecordChatRequest(intent string, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.chatRequests.WithLabelValues(intent, status).Inc()
	e.chatLatency.WithLabelValues(intent).Observe(latency.Seconds())
}

// RecordStreamEvent records one emitted stream event.
func (e *PrometheusExporter) RecordStreamEvent(eventType, mode string) {
	e.streamEvents.WithLabelValues(eventType, mode).Inc()
}

// RecordToolCall records a tool call.
func (e *PrometheusExporter) RecordToolCall(tool string, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.toolCalls.WithLabelValues(tool, status).Inc()
	e.toolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordCacheHit records a cache hit.
func (e *PrometheusExporter) RecordCacheHit(cacheType string) {
	e.cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss.
func (e *PrometheusExporter) RecordCacheMiss(cacheType string) {
	e.cacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordLLMLatency records one model round trip.
func (e *PrometheusExporter) RecordLLMLatency(provider string, latency time.Duration) {
	e.llmLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordLLMError records a failed model request.
func (e *PrometheusExporter) RecordLLMError(provider string) {
	e.llmErrors.WithLabelValues(provider).Inc()
}

// ChatStarted marks a chat request as streaming.
func (e *PrometheusExporter) ChatStarted() {
	e.chatActive.Inc()
}

// ChatFinished marks a streaming chat request as done.
func (e *PrometheusExporter) ChatFinished() {
	e.chatActive.Dec()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

// GetRegistry returns the Prometheus registry.
func (e *PrometheusExporter) GetRegistry() *prometheus.Registry {
	return e.registry
}
