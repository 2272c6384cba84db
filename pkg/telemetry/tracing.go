package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/particlewire/pkg/particle"
)

// DefaultTracerName is the tracer name used when none is configured.
const DefaultTracerName = "particlewire"

// Encoder wraps a particle.Encoder with a span, metrics and a debug log
// line per request.
//
// The tracer comes from the global OpenTelemetry provider unless
// WithTracer is given. Configure the provider in main() before encoding:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
type Encoder struct {
	enc     *particle.Encoder
	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// EncoderOption configures an instrumented Encoder.
type EncoderOption func(*Encoder)

// WithMetrics sets the collectors. Without it no metrics are recorded.
func WithMetrics(m *Metrics) EncoderOption {
	return func(e *Encoder) {
		e.metrics = m
	}
}

// WithTracerName resolves the tracer from the global provider by name.
// An empty name keeps the default.
func WithTracerName(name string) EncoderOption {
	return func(e *Encoder) {
		if name == "" {
			return
		}
		e.tracer = otel.Tracer(name)
	}
}

// WithTracer sets the tracer directly.
func WithTracer(t trace.Tracer) EncoderOption {
	return func(e *Encoder) {
		e.tracer = t
	}
}

// WithLogger sets the logger for failed encodes.
func WithLogger(l *slog.Logger) EncoderOption {
	return func(e *Encoder) {
		e.logger = l
	}
}

// NewEncoder instruments enc.
func NewEncoder(enc *particle.Encoder, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		enc:    enc,
		tracer: otel.Tracer(DefaultTracerName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Unwrap returns the underlying encoder.
func (e *Encoder) Unwrap() *particle.Encoder {
	return e.enc
}

// Encode builds the packet for req inside a span. The error is the
// *particle.EncodeError from Build.
func (e *Encoder) Encode(ctx context.Context, req particle.Request) (particle.Packet, error) {
	version := e.enc.Catalog().Version()
	ctx, span := e.tracer.Start(ctx, "particle.encode",
		trace.WithAttributes(
			attribute.String("particle.effect", req.Effect.String()),
			attribute.String("particle.version", version.String()),
			attribute.String("particle.payload", req.Payload.Kind().String()),
		),
	)
	defer span.End()

	start := time.Now()
	pkt, err := e.enc.Build(req)
	reason := particle.ReasonOf(err)
	e.metrics.ObserveEncode(req.Effect.String(), reason, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		e.logger.DebugContext(ctx, "encode produced nothing",
			"effect", req.Effect.String(),
			"version", version.String(),
			"reason", reason,
			"error", err,
		)
		return pkt, err
	}

	span.SetAttributes(attribute.String("particle.tier", pkt.Tier.String()))
	span.SetStatus(codes.Ok, "")
	return pkt, nil
}

// EncodeBytes encodes req and returns its wire form.
func (e *Encoder) EncodeBytes(ctx context.Context, req particle.Request) ([]byte, error) {
	pkt, err := e.Encode(ctx, req)
	if err != nil {
		return nil, err
	}
	b := pkt.Bytes()
	e.metrics.ObservePacketSize(len(b))
	return b, nil
}
