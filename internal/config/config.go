// Package config resolves calexport settings from flags, CALEXPORT_*
// environment variables and an optional YAML config file, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teemow/calexport/internal/applescript"
	"github.com/teemow/calexport/internal/events"
	"github.com/teemow/calexport/internal/export"
	"github.com/teemow/calexport/internal/logging"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CALEXPORT"

// Keys shared by flags, environment variables and the config file.
const (
	KeyCalendar    = "calendar"
	KeyStart       = "start"
	KeyEnd         = "end"
	KeyOutput      = "output"
	KeyFormat      = "format"
	KeyHeaderLang  = "header-lang"
	KeyLaunchDelay = "launch-delay"
	KeyDebug       = "debug"
	KeyLogFormat   = "log-format"
)

// Config holds the resolved settings of one run.
type Config struct {
	Calendar    string
	Start       string
	End         string
	Output      string
	Format      export.Format
	HeaderLang  string
	LaunchDelay time.Duration
	Debug       bool
	LogFormat   string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyFormat, string(export.FormatCSV))
	v.SetDefault(KeyHeaderLang, export.HeaderEnglish)
	v.SetDefault(KeyLaunchDelay, applescript.DefaultLaunchDelay)
	v.SetDefault(KeyLogFormat, logging.FormatText)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load binds flags, reads the config file and returns the validated Config.
// An explicit file that cannot be read is an error; a missing default file is not.
func Load(v *viper.Viper, flags *pflag.FlagSet, file string) (*Config, error) {
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Calendar:    strings.TrimSpace(v.GetString(KeyCalendar)),
		Start:       strings.TrimSpace(v.GetString(KeyStart)),
		End:         strings.TrimSpace(v.GetString(KeyEnd)),
		Output:      v.GetString(KeyOutput),
		Format:      export.Format(v.GetString(KeyFormat)),
		HeaderLang:  v.GetString(KeyHeaderLang),
		LaunchDelay: v.GetDuration(KeyLaunchDelay),
		Debug:       v.GetBool(KeyDebug),
		LogFormat:   v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks dates, format, header language and delay.
func (c *Config) Validate() error {
	if _, err := events.NewDateRange(c.Start, c.End); err != nil {
		return err
	}

	format, err := export.ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Format = format

	if _, err := export.Header(c.HeaderLang); err != nil {
		return err
	}

	if c.LaunchDelay < 0 {
		return fmt.Errorf("launch delay cannot be negative, got %s", c.LaunchDelay)
	}

	return nil
}

// DateRange returns the parsed date bounds. Call after Validate.
func (c *Config) DateRange() events.DateRange {
	r, _ := events.NewDateRange(c.Start, c.End)
	return r
}

// LogLevel returns the slog level name implied by Debug.
func (c *Config) LogLevel() string {
	if c.Debug {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}

// searchPaths lists directories searched for config.yaml.
func searchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "calexport"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "calexport"))
	}
	return dirs
}
