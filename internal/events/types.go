package events

import (
	"errors"
	"time"
)

const (
	// Delimiter separates fields within one record
	Delimiter = "||"

	// MissingValue is what AppleScript prints for an unset property
	MissingValue = "missing value"

	// DateLayout is the accepted format of date bounds
	DateLayout = "2006-01-02"

	// TimestampLayout is the format of event start and end timestamps
	TimestampLayout = "2006-01-02 15:04"

	maxFields = 6
	minFields = 5
)

var (
	// ErrInvalidDate is returned for a date bound not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrTooFewFields is returned for a record with fewer than five fields
	ErrTooFewFields = errors.New("record has too few fields")
)

// Event is one calendar event as read from the bridge
type Event struct {
	Calendar    string
	Summary     string
	Start       string
	End         string
	Description string
	Location    string
}

// StartTime parses Start using TimestampLayout
func (e Event) StartTime() (time.Time, error) {
	return time.Parse(TimestampLayout, e.Start)
}

// EndTime parses End using TimestampLayout
func (e Event) EndTime() (time.Time, error) {
	return time.Parse(TimestampLayout, e.End)
}

// Fields returns the event as a row in column order
func (e Event) Fields() []string {
	return []string{e.Calendar, e.Summary, e.Start, e.End, e.Description, e.Location}
}

// ParseStats counts what happened to each input line
type ParseStats struct {
	// Lines is the number of non-blank input lines
	Lines int

	// Kept is the number of events returned
	Kept int

	// Malformed is the number of lines dropped for having too few fields
	Malformed int

	// Filtered is the number of events outside the date range
	Filtered int

	// Unparsable is the number of kept events whose start could not be parsed
	Unparsable int
}
