package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Format is an output file format
type Format string

const (
	FormatCSV Format = "csv"
	FormatICS Format = "ics"
)

// Header languages for CSV output
const (
	HeaderEnglish = "en"
	HeaderChinese = "zh"
)

var (
	// ErrNoEvents is returned when there is nothing to write
	ErrNoEvents = errors.New("no calendar events matched")

	// ErrUnknownFormat is returned for an unsupported output format
	ErrUnknownFormat = errors.New("unknown output format")
)

// ParseFormat converts a format name into a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatICS:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w %q, must be one of: csv, ics", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension for the format, without a dot
func (f Format) Extension() string {
	return string(f)
}

// Options controls WriteFile
type Options struct {
	// Format selects the encoder (default: csv)
	Format Format

	// HeaderLang selects the CSV header language (default: en)
	HeaderLang string

	// Now is used for DTSTAMP in ics output (default: time.Now)
	Now func() time.Time
}

// Result describes a completed write
type Result struct {
	// Path is the file that was written
	Path string

	// Written is the number of events in the file
	Written int

	// Skipped is the number of events the encoder could not represent
	Skipped int
}
