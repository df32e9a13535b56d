// Package applescript provides a client for querying the macOS Calendar
// application through osascript.
//
// This package offers read-only Calendar access including:
//   - Listing the names of all calendars
//   - Dumping every event of every (or one named) calendar as delimited text
//
// The client wraps the osascript and open command-line tools and therefore
// only works on macOS. The first run may trigger the system prompt asking
// whether the terminal is allowed to control Calendar.
//
// Output format:
// Each event is written on its own line with the fields
//
//	calendar||summary||start||end||description||location
//
// where start and end are formatted as zero-padded "YYYY-MM-DD HH:MM".
// Use package events to turn this text into structured records.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := applescript.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := client.Events(ctx, "Work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(raw)
package applescript
