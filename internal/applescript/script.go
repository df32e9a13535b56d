package applescript

import (
	"fmt"
	"strings"
)

// FieldDelimiter separates the fields of one event in the script output.
const FieldDelimiter = "||"

// eventsScript dumps every event of the selected calendars. The %s verb
// receives the calendar selector ("" or a whose clause).
const eventsScript = `
on pad(n)
	return text -2 thru -1 of ("0" & (n as integer))
end pad

on stamp(d)
	return (year of d as text) & "-" & my pad(month of d as integer) & "-" & my pad(day of d) & " " & my pad(hours of d) & ":" & my pad(minutes of d)
end stamp

tell application "Calendar"
	set out to ""
	set cals to every calendar %s
	repeat with cal in cals
		set calName to name of cal
		repeat with ev in (every event of cal)
			try
				set evSummary to summary of ev
				set evStart to start date of ev
				set evEnd to end date of ev

				set evDescription to ""
				try
					set evDescription to description of ev
					if evDescription is missing value then set evDescription to ""
				end try

				set evLocation to ""
				try
					set evLocation to location of ev
					if evLocation is missing value then set evLocation to ""
				end try

				set evLine to calName & "%[2]s" & evSummary & "%[2]s" & my stamp(evStart) & "%[2]s" & my stamp(evEnd) & "%[2]s" & evDescription & "%[2]s" & evLocation
				if out is not "" then set out to out & linefeed
				set out to out & evLine
			end try
		end repeat
	end repeat
	return out
end tell
`

const calendarsScript = `
tell application "Calendar"
	set out to ""
	repeat with cal in (every calendar)
		if out is not "" then set out to out & linefeed
		set out to out & (name of cal)
	end repeat
	return out
end tell
`

// EventsScript returns the AppleScript source that lists the events of the
// named calendar, or of all calendars when name is empty.
func EventsScript(name string) string {
	selector := ""
	if name != "" {
		selector = fmt.Sprintf("whose name is %s", Quote(name))
	}
	return fmt.Sprintf(eventsScript, selector, FieldDelimiter)
}

// CalendarsScript returns the AppleScript source that lists calendar names.
func CalendarsScript() string {
	return calendarsScript
}

// Quote renders s as an AppleScript string literal.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
