// Package events turns the delimited text dumped by the Calendar bridge into
// Event records and filters them by date.
//
// Each input line carries the fields
//
//	calendar||summary||start||end||description||location
//
// Fields are trimmed and the AppleScript "missing value" marker becomes an
// empty string. Lines with fewer than five fields are dropped. Parsing never
// fails as a whole: bad lines are logged and skipped.
package events
