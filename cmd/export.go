package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/calexport/internal/applescript"
	"github.com/teemow/calexport/internal/config"
	"github.com/teemow/calexport/internal/events"
	"github.com/teemow/calexport/internal/export"
	"github.com/teemow/calexport/internal/instrumentation"
	"github.com/teemow/calexport/internal/logging"
)

// fileTimestampLayout is the timestamp embedded in default output file names
const fileTimestampLayout = "20060102_150405"

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export Calendar events to a file",
		Long: `Read events from the macOS Calendar application and write them to a file.

Events can be limited to one calendar with --calendar and to a date range
with --start and --end (both inclusive, YYYY-MM-DD). Without --output the
file is named after the range and the current time, for example
calendar_events_2024-01-01_to_2024-03-31_20240401_120000.csv.

Every flag can also be set with a CALEXPORT_ environment variable
(CALEXPORT_HEADER_LANG for --header-lang) or in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			provider, shutdown, err := startInstrumentation(ctx, logger)
			if err != nil {
				return err
			}
			defer shutdown()

			return runExport(ctx, cfg, logger, provider.Metrics())
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyCalendar, "", "Only export events of the calendar with this name (default: all calendars)")
	flags.String(config.KeyStart, "", "Only export events starting on or after this date (YYYY-MM-DD)")
	flags.String(config.KeyEnd, "", "Only export events starting on or before this date (YYYY-MM-DD)")
	flags.StringP(config.KeyOutput, "o", "", "Output file (default: calendar_events[_range]_<timestamp>.<format>)")
	flags.String(config.KeyFormat, string(export.FormatCSV), "Output format: csv or ics")
	flags.String(config.KeyHeaderLang, export.HeaderEnglish, "CSV header language: en or zh")

	return cmd
}

// runExport queries Calendar, filters the events and writes the output file.
// No matching events is not an error; nothing is written.
func runExport(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) error {
	ctx, span := instrumentation.StartSpan(ctx, "calexport.export",
		attribute.String(instrumentation.SpanAttrFormat, string(cfg.Format)),
		attribute.String(instrumentation.SpanAttrCalendar, cfg.Calendar),
	)
	defer span.End()

	logger = logging.WithOperation(logger, "export")
	if cfg.Calendar == "" {
		logger.Info("exporting events from all calendars")
	} else {
		logger.Info("exporting events from calendar", logging.Calendar(cfg.Calendar))
	}
	if cfg.Start != "" || cfg.End != "" {
		logger.Info("filtering by date", slog.String("start", cfg.Start), slog.String("end", cfg.End))
	}

	client, err := newBridge(cfg, logger)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return err
	}

	raw, err := instrumentedBridgeCall(ctx, metrics, applescript.OpEvents, cfg.Calendar,
		func(ctx context.Context) (string, error) {
			return client.Events(ctx, cfg.Calendar)
		})
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return fmt.Errorf("failed to read calendar events: %w", err)
	}

	evs := parseEvents(ctx, raw, cfg.DateRange(), logger, metrics)

	output := cfg.Output
	if output == "" {
		output = defaultOutputName(cfg.Start, cfg.End, cfg.Format, now())
	}

	result, err := writeExport(ctx, output, evs, cfg)
	switch {
	case errors.Is(err, export.ErrNoEvents):
		metrics.RecordExport(ctx, string(cfg.Format), instrumentation.StatusEmpty, 0)
		instrumentation.SetSpanSuccess(span)
		logger.Info("no calendar events matched, nothing written")
		return nil

	case err != nil:
		metrics.RecordExport(ctx, string(cfg.Format), instrumentation.StatusError, 0)
		instrumentation.SetSpanError(span, err)
		return err
	}

	metrics.RecordExport(ctx, string(cfg.Format), instrumentation.StatusSuccess, result.Written)
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrEventCount, result.Written))
	instrumentation.SetSpanSuccess(span)

	if result.Skipped > 0 {
		logger.Warn("skipped events without a valid start time", logging.Count(result.Skipped))
	}
	logger.Info("exported calendar events",
		logging.Count(result.Written),
		logging.Output(result.Path),
		logging.Format(string(cfg.Format)))

	return nil
}

// parseEvents parses the raw bridge output and records the parser outcome.
func parseEvents(ctx context.Context, raw string, r events.DateRange, logger *slog.Logger, metrics *instrumentation.Metrics) []events.Event {
	ctx, span := instrumentation.StartSpan(ctx, "events.parse")
	defer span.End()

	evs, stats := events.Parse(raw, r, logging.NewSlogAdapter(logger))

	metrics.RecordRecords(ctx, stats.Kept, stats.Malformed, stats.Filtered)
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrEventCount, stats.Kept))

	logger.Debug("parsed calendar records",
		slog.Int("lines", stats.Lines),
		slog.Int("kept", stats.Kept),
		slog.Int("malformed", stats.Malformed),
		slog.Int("filtered", stats.Filtered),
		slog.Int("unparsable", stats.Unparsable))

	return evs
}

// writeExport writes evs to path in the configured format.
func writeExport(ctx context.Context, path string, evs []events.Event, cfg *config.Config) (*export.Result, error) {
	_, span := instrumentation.StartSpan(ctx, "export.write",
		attribute.String(instrumentation.SpanAttrFormat, string(cfg.Format)),
	)
	defer span.End()

	result, err := export.WriteFile(path, evs, export.Options{
		Format:     cfg.Format,
		HeaderLang: cfg.HeaderLang,
		Now:        now,
	})
	if err != nil && !errors.Is(err, export.ErrNoEvents) {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to export events: %w", err)
	}
	return result, err
}

// defaultOutputName builds calendar_events[_range]_<timestamp>.<ext>.
func defaultOutputName(start, end string, format export.Format, t time.Time) string {
	var dateRange string
	switch {
	case start != "" && end != "":
		dateRange = fmt.Sprintf("_%s_to_%s", start, end)
	case start != "":
		dateRange = "_from_" + start
	case end != "":
		dateRange = "_to_" + end
	}

	if format == "" {
		format = export.FormatCSV
	}

	return fmt.Sprintf("calendar_events%s_%s.%s", dateRange, t.Format(fileTimestampLayout), format.Extension())
}
