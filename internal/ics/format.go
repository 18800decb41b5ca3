// Package ics renders events as iCalendar documents and reads them back.
//
// The output format is fixed: UTC basic-format timestamps, CRLF line
// endings, and the minimal property set calendar clients expect. Import
// goes through the emersion/go-ical parser, which is forgiving about the
// wider variety of documents found in the wild.
package ics

import (
	"strings"
	"time"

	"github.com/aminethecode/agenda/internal/event"
)

const (
	prodID       = "-//agenda//EN"
	uidDomain    = "agenda.local"
	calendarName = "My Calendar"
)

// timestampLayout is iCalendar basic format with the UTC designator.
const timestampLayout = "20060102T150405Z"

// escaper handles iCalendar TEXT escaping: backslash, comma, semicolon,
// and newline. A single replacer keeps the passes from re-escaping each
// other's output.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\n", `\n`,
)

// Format renders a single event as a complete VCALENDAR document.
// now becomes the DTSTAMP.
func Format(e event.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"METHOD:PUBLISH",
	}
	lines = append(lines, eventLines(e, now)...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

// FormatCalendar renders the whole collection as one VCALENDAR document.
func FormatCalendar(events []event.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + calendarName,
		"X-WR-TIMEZONE:UTC",
	}
	for _, e := range events {
		lines = append(lines, eventLines(e, now)...)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

// eventLines renders one VEVENT block. Optional properties are omitted
// entirely when empty.
func eventLines(e event.Event, now time.Time) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + e.ID + "@" + uidDomain,
		"DTSTAMP:" + formatTimestamp(now),
		"DTSTART:" + formatTimestamp(e.Start),
		"DTEND:" + formatTimestamp(e.End),
		"SUMMARY:" + escaper.Replace(e.Title),
	}
	if e.Description != "" {
		lines = append(lines, "DESCRIPTION:"+escaper.Replace(e.Description))
	}
	if e.Location != "" {
		lines = append(lines, "LOCATION:"+escaper.Replace(e.Location))
	}
	if len(e.Attendees) > 0 {
		lines = append(lines, "ATTENDEE:"+strings.Join(e.Attendees, ","))
	}
	lines = append(lines, "END:VEVENT")
	return lines
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Filename derives a safe download filename from an event title, the way
// calendar apps name exported files: non-alphanumerics collapse to
// underscores, lowercased.
func Filename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + ".ics"
}
