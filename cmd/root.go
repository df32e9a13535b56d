package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/calexport/internal/applescript"
	"github.com/teemow/calexport/internal/config"
	"github.com/teemow/calexport/internal/logging"
)

// Persistent flag names that are not config keys.
const flagConfig = "config"

// rootCmd represents the base command for the calexport application
var rootCmd = newRootCmd()

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calexport version %s\n" .Version}}`)

	// If no subcommand is provided, run the export command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "export")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calexport",
		Short: "Exports macOS Calendar events to CSV",
		Long: `calexport reads events from the macOS Calendar application through
osascript and writes them to a CSV (or iCalendar) file, optionally
filtered by calendar name and date range.

Running calexport without a subcommand runs "export".`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to a YAML config file (default: $XDG_CONFIG_HOME/calexport/config.yaml)")
	flags.Bool(config.KeyDebug, false, "Enable debug logging")
	flags.String(config.KeyLogFormat, logging.FormatText, "Log format: text or json")
	flags.Duration(config.KeyLaunchDelay, applescript.DefaultLaunchDelay, "Wait after launching Calendar before querying it")

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newCalendarsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
