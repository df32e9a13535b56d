package applescript

import "fmt"

// Operation names used in BridgeError and instrumentation.
const (
	OpLaunch    = "launch"
	OpEvents    = "events"
	OpCalendars = "calendars"
)

// BridgeError represents an error that occurred while scripting Calendar
type BridgeError struct {
	// Op is the operation that failed (e.g., "events", "calendars")
	Op string

	// Calendar is the calendar name filter in effect, if any
	Calendar string

	// Stderr is the diagnostic output of osascript, if any
	Stderr string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *BridgeError) Error() string {
	msg := fmt.Sprintf("applescript %s: %v", e.Op, e.Err)
	if e.Calendar != "" {
		msg = fmt.Sprintf("applescript %s (calendar: %s): %v", e.Op, e.Calendar, e.Err)
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *BridgeError) Unwrap() error {
	return e.Err
}
