package export

import (
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/teemow/calexport/internal/events"
)

const (
	productID      = "-//calexport//Calendar Export//EN"
	floatingLayout = "20060102T150405"
)

// uidNamespace scopes the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("calexport"))

// EventUID returns a stable UID for ev. Exporting the same event twice
// yields the same UID so importers can deduplicate.
func EventUID(ev events.Event) string {
	name := ev.Calendar + "\x00" + ev.Summary + "\x00" + ev.Start
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@calexport"
}

// EncodeICS writes evs as an iCalendar document to w and returns how many
// events were written and skipped. Events without a parsable start are
// skipped since DTSTART is mandatory.
func EncodeICS(w io.Writer, evs []events.Event, now time.Time) (written, skipped int, err error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := now.UTC()
	for _, ev := range evs {
		vevent, ok := toVEvent(ev, stamp)
		if !ok {
			skipped++
			continue
		}
		cal.Children = append(cal.Children, vevent.Component)
		written++
	}

	// A VCALENDAR needs at least one component.
	if written == 0 {
		return 0, skipped, nil
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, skipped, err
	}
	return written, skipped, nil
}

// toVEvent converts ev into a VEVENT with floating times
func toVEvent(ev events.Event, stamp time.Time) (*ical.Event, bool) {
	start, err := time.Parse(events.TimestampLayout, ev.Start)
	if err != nil {
		return nil, false
	}

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, EventUID(ev))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	vevent.Props.SetText(ical.PropSummary, ev.Summary)
	vevent.Props.Set(floatingDateTime(ical.PropDateTimeStart, start))

	if end, err := time.Parse(events.TimestampLayout, ev.End); err == nil {
		vevent.Props.Set(floatingDateTime(ical.PropDateTimeEnd, end))
	}
	if ev.Description != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		vevent.Props.SetText(ical.PropLocation, ev.Location)
	}
	if ev.Calendar != "" {
		vevent.Props.SetText(ical.PropCategories, ev.Calendar)
	}

	return vevent, true
}

// floatingDateTime builds a DATE-TIME property without TZID or UTC marker.
// Calendar reports wall-clock times, so the importer's zone applies.
func floatingDateTime(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)
	return prop
}
