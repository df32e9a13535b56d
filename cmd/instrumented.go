package cmd

import (
	"context"
	"time"

	"github.com/teemow/calexport/internal/instrumentation"
)

// instrumentedBridgeCall runs one bridge operation inside a client span and
// records its invocation metrics.
func instrumentedBridgeCall[T any](
	ctx context.Context,
	metrics *instrumentation.Metrics,
	operation string,
	calendar string,
	call func(ctx context.Context) (T, error),
) (T, error) {
	ctx, span := instrumentation.StartBridgeSpan(ctx, operation, calendar)
	defer span.End()

	start := time.Now()
	result, err := call(ctx)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	metrics.RecordBridgeInvocation(ctx, operation, status, duration)

	return result, err
}
