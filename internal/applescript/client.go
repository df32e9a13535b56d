package applescript

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultApplication is the scripted host application.
	DefaultApplication = "Calendar"

	// DefaultLaunchDelay is how long to wait after asking the application to launch.
	DefaultLaunchDelay = time.Second
)

// Runner executes an external command and returns its stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and captures its output
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// Client provides read access to the Calendar application via osascript
type Client struct {
	runner      Runner
	application string
	launchDelay time.Duration
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithLaunchDelay sets the wait after launching the application.
func WithLaunchDelay(d time.Duration) Option {
	return func(c *Client) {
		c.launchDelay = d
	}
}

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Calendar client.
// Unless a Runner is supplied, osascript must be available in PATH.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		application: DefaultApplication,
		launchDelay: DefaultLaunchDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.launchDelay < 0 {
		return nil, fmt.Errorf("launch delay cannot be negative")
	}

	if c.runner == nil {
		if _, err := exec.LookPath("osascript"); err != nil {
			return nil, &BridgeError{
				Op:  "initialize",
				Err: fmt.Errorf("osascript not found in PATH; calendar export requires macOS"),
			}
		}
		c.runner = ExecRunner{}
	}

	return c, nil
}

// LaunchDelay returns the configured wait after launching the application
func (c *Client) LaunchDelay() time.Duration {
	return c.launchDelay
}

// EnsureRunning starts the application in the background if needed and
// waits for the launch delay. A failing launch is logged, not returned;
// the subsequent query reports the real problem.
func (c *Client) EnsureRunning(ctx context.Context) error {
	// open -g -a Calendar
	_, stderr, err := c.runner.Run(ctx, "open", "-g", "-a", c.application)
	if err != nil {
		c.logger.Debug("failed to launch application",
			slog.String("application", c.application),
			slog.String("stderr", strings.TrimSpace(stderr)),
			slog.String("error", err.Error()))
	}

	if c.launchDelay == 0 {
		return nil
	}

	timer := time.NewTimer(c.launchDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return &BridgeError{Op: OpLaunch, Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

// Events returns the raw delimited event dump of the named calendar,
// or of all calendars when name is empty.
func (c *Client) Events(ctx context.Context, name string) (string, error) {
	if err := c.EnsureRunning(ctx); err != nil {
		return "", err
	}

	return c.runScript(ctx, OpEvents, name, EventsScript(name))
}

// Calendars returns the names of all calendars in the order Calendar reports them
func (c *Client) Calendars(ctx context.Context) ([]string, error) {
	if err := c.EnsureRunning(ctx); err != nil {
		return nil, err
	}

	out, err := c.runScript(ctx, OpCalendars, "", CalendarsScript())
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// runScript executes script with osascript and returns its trimmed stdout
func (c *Client) runScript(ctx context.Context, op, calendar, script string) (string, error) {
	stdout, stderr, err := c.runner.Run(ctx, "osascript", "-e", script)
	if err != nil {
		return "", &BridgeError{
			Op:       op,
			Calendar: calendar,
			Stderr:   strings.TrimSpace(stderr),
			Err:      fmt.Errorf("script execution failed: %w", err),
		}
	}

	return strings.TrimSpace(stdout), nil
}
