// Package export writes parsed calendar events to files.
//
// Two formats are supported:
//   - csv: a fixed six-column header followed by one row per event. Every
//     field is quoted and the file starts with a UTF-8 byte-order mark so
//     spreadsheet applications detect the encoding.
//   - ics: an iCalendar (RFC 5545) file with one VEVENT per event.
//
// WriteFile never creates a file for an empty event list; it returns
// ErrNoEvents instead. Files are written to a temporary sibling and renamed
// into place, so a failed write leaves no partial output behind.
package export
