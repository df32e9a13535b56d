package events

import (
	"fmt"
	"strings"

	"github.com/teemow/calexport/internal/logging"
)

// Parse splits raw bridge output into events and keeps those whose start
// lies within r. Events with an unparsable start are kept.
func Parse(raw string, r DateRange, logger logging.Logger) ([]Event, ParseStats) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	var stats ParseStats
	events := []Event{}

	for n, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.Lines++

		ev, err := ParseRecord(line)
		if err != nil {
			stats.Malformed++
			logger.Debug("skipping record", "line", n+1, "record", line, "error", err.Error())
			continue
		}

		if !r.IsZero() {
			start, err := ev.StartTime()
			if err != nil {
				stats.Unparsable++
				logger.Debug("keeping event with unparsable start", "line", n+1, "start", ev.Start)
			} else if !r.Contains(start) {
				stats.Filtered++
				continue
			}
		}

		events = append(events, ev)
	}

	stats.Kept = len(events)
	return events, stats
}

// ParseRecord parses one delimited line into an Event
func ParseRecord(line string) (Event, error) {
	parts := strings.SplitN(line, Delimiter, maxFields)
	if len(parts) < minFields {
		return Event{}, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(parts), minFields)
	}

	for i := range parts {
		parts[i] = cleanField(parts[i])
	}

	ev := Event{
		Calendar:    parts[0],
		Summary:     parts[1],
		Start:       parts[2],
		End:         parts[3],
		Description: parts[4],
	}
	if len(parts) == maxFields {
		ev.Location = parts[5]
	}

	return ev, nil
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if s == MissingValue {
		return ""
	}
	return s
}
