package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/calexport/internal/applescript"
)

func newCalendarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the names of all calendars",
		Long: `List the names of all calendars known to the Calendar application,
one per line. Any of them can be passed to "export --calendar".`,
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

			client, err := newBridge(cfg, logger)
			if err != nil {
				return err
			}

			names, err := instrumentedBridgeCall(ctx, provider.Metrics(), applescript.OpCalendars, "",
				func(ctx context.Context) ([]string, error) {
					return client.Calendars(ctx)
				})
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}

			if len(names) == 0 {
				logger.Info("no calendars found")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
