// Package instrumentation provides OpenTelemetry instrumentation for a
// calexport run.
//
// Instrumentation is off by default. When enabled it records:
//
// Bridge Metrics:
//   - calexport_bridge_invocations_total: Counter of osascript runs by operation and status
//   - calexport_bridge_duration_seconds: Histogram of osascript run durations
//
// Parser Metrics:
//   - calexport_records_total: Counter of input records by result (kept, malformed, filtered)
//
// Export Metrics:
//   - calexport_exports_total: Counter of export runs by format and status
//   - calexport_exported_events_total: Counter of events written
//
// # Tracing
//
// One trace per run, with spans for:
//   - calexport.export (root)
//   - bridge.<operation>
//   - events.parse
//   - export.write
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - METRICS_TEXTFILE: File the prometheus exporter writes at exit
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: calexport)
//
// The prometheus exporter suits the node_exporter textfile collector: set
// METRICS_TEXTFILE to a *.prom file in the collector directory.
package instrumentation
