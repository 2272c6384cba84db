package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/particle"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEncoder(t *testing.T) (*Encoder, *Metrics) {
	t.Helper()
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	cat := particle.NewCatalog(mapping.Load(mapping.Default(), 19))
	return NewEncoder(particle.NewEncoder(cat), WithMetrics(m), WithLogger(quietLogger())), m
}

func TestEncoderRecordsOutcomes(t *testing.T) {
	enc, m := newTestEncoder(t)
	ctx := context.Background()

	if _, err := enc.Encode(ctx, particle.Request{Effect: particle.Flame}); err != nil {
		t.Fatalf("Encode(Flame) error = %v", err)
	}
	_, err := enc.Encode(ctx, particle.Request{Effect: particle.BlockCrack})
	if !errors.Is(err, particle.ErrPayloadIncompatible) {
		t.Fatalf("Encode(BlockCrack) error = %v; want ErrPayloadIncompatible", err)
	}

	if got := metricCounterValue(t, m.encodesTotal.WithLabelValues("FLAME", "packet")); got != 1 {
		t.Errorf("encodes_total(FLAME, packet) = %v; want 1", got)
	}
	if got := metricCounterValue(t, m.encodesTotal.WithLabelValues("BLOCK_CRACK", "nothing")); got != 1 {
		t.Errorf("encodes_total(BLOCK_CRACK, nothing) = %v; want 1", got)
	}
	if got := metricCounterValue(t, m.encodeFailures.WithLabelValues("payload_incompatible")); got != 1 {
		t.Errorf("encode_failures_total = %v; want 1", got)
	}
	if got := metricHistogramCount(t, m.encodeDuration); got != 2 {
		t.Errorf("encode_duration_seconds count = %d; want 2", got)
	}
}

func TestEncodeBytes(t *testing.T) {
	enc, m := newTestEncoder(t)

	b, err := enc.EncodeBytes(context.Background(), particle.Request{Effect: particle.Cloud, Speed: 1})
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	if _, err := particle.DecodePacket(b); err != nil {
		t.Errorf("DecodePacket() error = %v", err)
	}
	if got := metricHistogramCount(t, m.packetBytes); got != 1 {
		t.Errorf("packet_bytes count = %d; want 1", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveEncode("X", "ok", time.Millisecond)
	m.ObservePacketSize(10)
	m.RecordTaskStart()
	m.RecordTaskStop()
	m.RecordFrames(3)
	m.RecordDeliveryError("write")
	m.RecordEndpointConnect()
	m.RecordEndpointDisconnect()
}

func TestBroadcastRecorders(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.RecordTaskStart()
	m.RecordTaskStart()
	m.RecordTaskStop()
	m.RecordFrames(5)
	m.RecordDeliveryError("write")
	m.RecordEndpointConnect()

	if got := metricGaugeValue(t, m.tasksActive); got != 1 {
		t.Errorf("tasks_active = %v; want 1", got)
	}
	if got := metricCounterValue(t, m.framesSent); got != 5 {
		t.Errorf("frames_sent_total = %v; want 5", got)
	}
	if got := metricCounterValue(t, m.deliveryErrors.WithLabelValues("write")); got != 1 {
		t.Errorf("delivery_errors_total = %v; want 1", got)
	}
	if got := metricGaugeValue(t, m.endpointsConnected); got != 1 {
		t.Errorf("endpoints_connected = %v; want 1", got)
	}
}

func TestInitIsOnce(t *testing.T) {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()

	a := Init(WithRegistry(prometheus.NewRegistry()))
	b := Init(WithNamespace("ignored"))
	if a != b || Default() != a {
		t.Error("Init() should return the same collectors")
	}
}

func TestHTTPMiddleware(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	r := chi.NewRouter()
	r.Use(HTTP(m, ""))
	r.Get("/v1/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks/7", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rec.Code)
	}

	if got := metricCounterValue(t, m.httpRequests.WithLabelValues("/v1/tasks/{id}", "GET", "404")); got != 1 {
		t.Errorf("http_requests_total = %v; want 1", got)
	}
	if got := metricHistogramCount(t, m.httpDuration.WithLabelValues("/v1/tasks/{id}")); got != 1 {
		t.Errorf("http_request_duration_seconds count = %d; want 1", got)
	}
}
