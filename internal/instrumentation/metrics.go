package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrResult    = "result"
	attrFormat    = "format"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder.
type Metrics struct {
	// Bridge metrics
	bridgeInvocationsTotal metric.Int64Counter
	bridgeDuration         metric.Float64Histogram

	// Parser metrics
	recordsTotal metric.Int64Counter

	// Export metrics
	exportsTotal        metric.Int64Counter
	exportedEventsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.bridgeInvocationsTotal, err = meter.Int64Counter(
		"calexport_bridge_invocations_total",
		metric.WithDescription("Total number of Calendar automation invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calexport_bridge_invocations_total counter: %w", err)
	}

	m.bridgeDuration, err = meter.Float64Histogram(
		"calexport_bridge_duration_seconds",
		metric.WithDescription("Calendar automation invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calexport_bridge_duration_seconds histogram: %w", err)
	}

	m.recordsTotal, err = meter.Int64Counter(
		"calexport_records_total",
		metric.WithDescription("Total number of event records read, by result"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calexport_records_total counter: %w", err)
	}

	m.exportsTotal, err = meter.Int64Counter(
		"calexport_exports_total",
		metric.WithDescription("Total number of export runs, by format and status"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calexport_exports_total counter: %w", err)
	}

	m.exportedEventsTotal, err = meter.Int64Counter(
		"calexport_exported_events_total",
		metric.WithDescription("Total number of events written to output files"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calexport_exported_events_total counter: %w", err)
	}

	return m, nil
}

// RecordBridgeInvocation records one osascript run.
//
// Parameters:
//   - operation: bridge operation ("events", "calendars")
//   - status: result status ("success" or "error")
//   - duration: time taken including the launch delay
func (m *Metrics) RecordBridgeInvocation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.bridgeInvocationsTotal == nil || m.bridgeDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.bridgeInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.bridgeDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRecords records parser outcomes. Zero counts are skipped.
func (m *Metrics) RecordRecords(ctx context.Context, kept, malformed, filtered int) {
	if m.recordsTotal == nil {
		return // Instrumentation not initialized
	}

	for result, n := range map[string]int{
		RecordKept:      kept,
		RecordMalformed: malformed,
		RecordFiltered:  filtered,
	} {
		if n == 0 {
			continue
		}
		m.recordsTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrResult, result)))
	}
}

// RecordExport records the outcome of writing the output file.
// Status should be one of: "success", "error", "empty"
func (m *Metrics) RecordExport(ctx context.Context, format, status string, events int) {
	if m.exportsTotal == nil || m.exportedEventsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrFormat, format),
		attribute.String(attrStatus, status),
	}

	m.exportsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if events > 0 {
		m.exportedEventsTotal.Add(ctx, int64(events), metric.WithAttributes(attribute.String(attrFormat, format)))
	}
}
