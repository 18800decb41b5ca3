package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/aminethecode/agenda/internal/event"
)

// Parse reads iCalendar data and converts each VEVENT into an event draft
// (no ID, no owner — the store assigns those on Add). Events without a
// summary or without both DTSTART and DTEND are skipped: partial imports
// are more useful than rejecting a whole file over one bad entry.
func Parse(r io.Reader) ([]event.Event, error) {
	dec := ical.NewDecoder(r)

	var events []event.Event
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse calendar: %w", err)
		}

		for _, child := range cal.Children {
			if child.Name != ical.CompEvent {
				continue
			}
			e, ok := parseVEvent(child)
			if !ok {
				continue
			}
			events = append(events, e)
		}
	}
	return events, nil
}

func parseVEvent(comp *ical.Component) (event.Event, bool) {
	summary, err := comp.Props.Text(ical.PropSummary)
	if err != nil || summary == "" {
		return event.Event{}, false
	}
	start, err := comp.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	if err != nil || start.IsZero() {
		return event.Event{}, false
	}
	end, err := comp.Props.DateTime(ical.PropDateTimeEnd, time.UTC)
	if err != nil || end.IsZero() {
		return event.Event{}, false
	}

	e := event.Event{
		Title: summary,
		Start: start,
		End:   end,
	}
	if desc, err := comp.Props.Text(ical.PropDescription); err == nil {
		e.Description = desc
	}
	if loc, err := comp.Props.Text(ical.PropLocation); err == nil {
		e.Location = loc
	}
	e.Attendees = parseAttendees(comp.Props[ical.PropAttendee])
	return e, true
}

// parseAttendees accepts both the mailto: form RFC 5545 prescribes and the
// bare comma-joined address list this package's own exporter writes.
func parseAttendees(props []ical.Prop) []string {
	var out []string
	for _, p := range props {
		for _, addr := range strings.Split(p.Value, ",") {
			addr = strings.TrimSpace(strings.TrimPrefix(addr, "mailto:"))
			if addr != "" {
				out = append(out, addr)
			}
		}
	}
	return out
}
