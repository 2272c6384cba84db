// Package telemetry provides Prometheus metrics, OpenTelemetry tracing and
// structured logging around packet encoding and delivery.
//
// Metrics collected (namespace "particlewire" by default):
//   - encodes_total: encode requests by effect and outcome (packet/nothing)
//   - encode_failures_total: requests that produced nothing, by reason
//   - encode_duration_seconds: time to build one packet
//   - packet_bytes: wire size of encoded packets
//   - tasks_active: running repeating display tasks
//   - frames_sent_total: packets delivered to endpoints
//   - delivery_errors_total: failed deliveries by type
//   - endpoints_connected: connected viewer endpoints
//   - http_requests_total, http_request_duration_seconds: API traffic
//
// Example:
//
//	m := telemetry.Init(telemetry.WithNamespace("fx"))
//	enc := telemetry.NewEncoder(particle.NewEncoder(cat), telemetry.WithMetrics(m))
//	pkt, err := enc.Encode(ctx, req)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
package telemetry
