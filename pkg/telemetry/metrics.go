package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "particlewire").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for encode duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the encode duration buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "particlewire",
		// encodes take microseconds
		Buckets:  prometheus.ExponentialBuckets(1e-6, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors. All methods are safe on a nil *Metrics, so
// components can take one optionally.
type Metrics struct {
	encodesTotal   *prometheus.CounterVec
	encodeFailures *prometheus.CounterVec
	encodeDuration prometheus.Histogram
	packetBytes    prometheus.Histogram

	tasksActive        prometheus.Gauge
	framesSent         prometheus.Counter
	deliveryErrors     *prometheus.CounterVec
	endpointsConnected prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		encodesTotal:   counter("encodes_total", "Encode requests by effect and outcome", "effect", "outcome"),
		encodeFailures: counter("encode_failures_total", "Encode requests that produced nothing, by reason", "reason"),
		encodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "encode_duration_seconds",
			Help:        "Time to build one packet",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		packetBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packet_bytes",
			Help:        "Wire size of encoded packets",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{32, 48, 64, 96, 128, 192, 256},
		}),

		tasksActive: gauge("tasks_active", "Running repeating display tasks"),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Packets delivered to endpoints",
			ConstLabels: config.ConstLabels,
		}),
		deliveryErrors:     counter("delivery_errors_total", "Failed deliveries by type", "type"),
		endpointsConnected: gauge("endpoints_connected", "Connected viewer endpoints"),

		httpRequests: counter("http_requests_total", "HTTP requests by route, method and status", "route", "method", "status"),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

var (
	globalMetrics   *Metrics
	globalMetricsMu sync.Mutex
)

// Init creates the process-wide collectors on first call and returns them.
// Later calls ignore opts.
func Init(opts ...MetricsOption) *Metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		globalMetrics = NewMetrics(opts...)
	}
	return globalMetrics
}

// Default returns the process-wide collectors, or nil before Init.
func Default() *Metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// ObserveEncode records one encode attempt. reason is "ok" on success.
func (m *Metrics) ObserveEncode(effect, reason string, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "packet"
	if reason != "ok" {
		outcome = "nothing"
		m.encodeFailures.WithLabelValues(reason).Inc()
	}
	m.encodesTotal.WithLabelValues(effect, outcome).Inc()
	m.encodeDuration.Observe(d.Seconds())
}

// ObservePacketSize records the wire size of a packet.
func (m *Metrics) ObservePacketSize(n int) {
	if m == nil {
		return
	}
	m.packetBytes.Observe(float64(n))
}

// RecordTaskStart records a display task starting.
func (m *Metrics) RecordTaskStart() {
	if m != nil {
		m.tasksActive.Inc()
	}
}

// RecordTaskStop records a display task ending.
func (m *Metrics) RecordTaskStop() {
	if m != nil {
		m.tasksActive.Dec()
	}
}

// RecordFrames records delivered packets.
func (m *Metrics) RecordFrames(count int) {
	if m != nil {
		m.framesSent.Add(float64(count))
	}
}

// RecordDeliveryError records a failed delivery.
func (m *Metrics) RecordDeliveryError(errorType string) {
	if m != nil {
		m.deliveryErrors.WithLabelValues(errorType).Inc()
	}
}

// RecordEndpointConnect records a viewer connecting.
func (m *Metrics) RecordEndpointConnect() {
	if m != nil {
		m.endpointsConnected.Inc()
	}
}

// RecordEndpointDisconnect records a viewer leaving.
func (m *Metrics) RecordEndpointDisconnect() {
	if m != nil {
		m.endpointsConnected.Dec()
	}
}
