// Package cmd implements the command-line interface for calexport.
//
// This package provides the following commands:
//   - export: Write Calendar events to a CSV or iCalendar file
//   - calendars: List the names of all calendars
//   - version: Display version information
//
// The export command is the default command when no subcommand is specified.
package cmd
