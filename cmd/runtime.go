package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/calexport/internal/applescript"
	"github.com/teemow/calexport/internal/config"
	"github.com/teemow/calexport/internal/instrumentation"
	"github.com/teemow/calexport/internal/logging"
)

// bridge is the part of the applescript client the commands use.
type bridge interface {
	Events(ctx context.Context, name string) (string, error)
	Calendars(ctx context.Context) ([]string, error)
}

// newBridge creates the Calendar client. Replaced in tests.
var newBridge = func(cfg *config.Config, logger *slog.Logger) (bridge, error) {
	client, err := applescript.NewClient(
		applescript.WithLaunchDelay(cfg.LaunchDelay),
		applescript.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// now is the clock used for default file names and DTSTAMP. Replaced in tests.
var now = time.Now

// setup resolves the configuration of a command run and installs its logger
// as the slog default. Logs go to the command's stderr.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	file, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(config.New(), cmd.Flags(), file)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel(), cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// startInstrumentation creates the instrumentation provider from the
// environment. The returned function flushes and shuts it down.
func startInstrumentation(ctx context.Context, logger *slog.Logger) (*instrumentation.Provider, func(), error) {
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}

	return provider, shutdown, nil
}
