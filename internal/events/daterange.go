package events

import (
	"fmt"
	"time"
)

// DateRange selects events by their start time. A zero bound is open.
type DateRange struct {
	// Start is the first included day
	Start time.Time

	// End is the last included day
	End time.Time
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// NewDateRange builds a DateRange from optional YYYY-MM-DD strings
func NewDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error

	if start != "" {
		if r.Start, err = ParseDate(start); err != nil {
			return DateRange{}, fmt.Errorf("start date: %w", err)
		}
	}
	if end != "" {
		if r.End, err = ParseDate(end); err != nil {
			return DateRange{}, fmt.Errorf("end date: %w", err)
		}
	}

	return r, nil
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t lies in [Start, End + 1 day)
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}
