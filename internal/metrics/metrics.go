// Package metrics holds the Prometheus collectors for the escrow service.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "escrow"

var (
	engineOnce     sync.Once
	engineRegistry *EngineMetrics

	httpOnce     sync.Once
	httpRegistry *HTTPMetrics
)

// EngineMetrics tracks escrow operations and their provider calls
type EngineMetrics struct {
	operations        *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	providerCalls     *prometheus.CounterVec
	providerLatency   *prometheus.HistogramVec
	orderSyncFailures *prometheus.CounterVec
	pendingResolved   *prometheus.CounterVec
}

// Engine returns the lazily-initialised engine metrics registry
func Engine() *EngineMetrics {
	engineOnce.Do(func() {
		engineRegistry = &EngineMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Escrow operations segmented by operation and result code.",
			}, []string{"operation", "result"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "operation_duration_seconds",
				Help:      "Latency distribution for escrow operations including provider calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
			providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "calls_total",
				Help:      "Payment provider calls segmented by provider, call and outcome.",
			}, []string{"provider", "call", "outcome"}),
			providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "call_duration_seconds",
				Help:      "Latency distribution for payment provider calls.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			}, []string{"provider", "call"}),
			orderSyncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "sync_failures_total",
				Help:      "Order status updates the order collaborator did not acknowledge.",
			}, []string{"order_status"}),
			pendingResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "pending_outcomes_resolved_total",
				Help:      "Unknown provider outcomes resolved by verification, by operation and resolution.",
			}, []string{"operation", "resolution"}),
		}
		prometheus.MustRegister(
			engineRegistry.operations,
			engineRegistry.duration,
			engineRegistry.providerCalls,
			engineRegistry.providerLatency,
			engineRegistry.orderSyncFailures,
			engineRegistry.pendingResolved,
		)
	})
	return engineRegistry
}

// ObserveOperation records one engine operation. result is "ok" or an error code.
func (m *EngineMetrics) ObserveOperation(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	if result == "" {
		result = "ok"
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveProviderCall records one call across the provider boundary
func (m *EngineMetrics) ObserveProviderCall(provider, call, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(provider, call, outcome).Inc()
	m.providerLatency.WithLabelValues(provider, call).Observe(duration.Seconds())
}

// RecordOrderSyncFailure counts an order update that was not acknowledged
func (m *EngineMetrics) RecordOrderSyncFailure(orderStatus string) {
	if m == nil {
		return
	}
	m.orderSyncFailures.WithLabelValues(orderStatus).Inc()
}

// RecordPendingResolution counts how an unknown outcome was settled:
// "completed", "not_found" or "still_unknown".
func (m *EngineMetrics) RecordPendingResolution(operation, resolution string) {
	if m == nil {
		return
	}
	m.pendingResolved.WithLabelValues(operation, resolution).Inc()
}

// HTTPMetrics tracks API requests
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// HTTP returns the lazily-initialised HTTP metrics registry
func HTTP() *HTTPMetrics {
	httpOnce.Do(func() {
		httpRegistry = &HTTPMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests segmented by route, method and status code.",
			}, []string{"route", "method", "status"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution for HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "method"}),
		}
		prometheus.MustRegister(httpRegistry.requests, httpRegistry.latency)
	})
	return httpRegistry
}

// Observe records one HTTP request
func (m *HTTPMetrics) Observe(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}
