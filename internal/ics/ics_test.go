package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminethecode/agenda/internal/event"
)

var stamp = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func fullEvent() event.Event {
	return event.Event{
		ID:          "11111111-1111-1111-1111-111111111111",
		OwnerID:     "u1",
		Title:       "Team standup",
		Start:       time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		Description: "Daily sync, 15 minutes",
		Location:    "Room 2; annex",
		Attendees:   []string{"a@example.com", "b@example.com"},
	}
}

func minimalEvent() event.Event {
	return event.Event{
		ID:      "22222222-2222-2222-2222-222222222222",
		OwnerID: "u1",
		Title:   "Focus block",
		Start:   time.Date(2024, time.January, 16, 13, 0, 0, 0, time.UTC),
		End:     time.Date(2024, time.January, 16, 15, 0, 0, 0, time.UTC),
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestFormat_SingleEventGolden(t *testing.T) {
	got := Format(fullEvent(), stamp)
	newGoldie(t).Assert(t, "single_event", []byte(got))
}

func TestFormatCalendar_Golden(t *testing.T) {
	got := FormatCalendar([]event.Event{fullEvent(), minimalEvent()}, stamp)
	newGoldie(t).Assert(t, "calendar", []byte(got))
}

func TestFormat_UsesCRLFAndNoOptionalLines(t *testing.T) {
	got := Format(minimalEvent(), stamp)

	assert.True(t, strings.Contains(got, "\r\n"), "lines must be CRLF separated")
	assert.False(t, strings.Contains(got, "DESCRIPTION"), "empty description must be omitted")
	assert.False(t, strings.Contains(got, "LOCATION"), "empty location must be omitted")
	assert.False(t, strings.Contains(got, "ATTENDEE"), "empty attendee list must be omitted")
}

func TestFormat_ConvertsTimestampsToUTC(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	e := minimalEvent()
	e.Start = time.Date(2024, time.January, 16, 8, 0, 0, 0, nyc) // 13:00 UTC
	e.End = e.Start.Add(time.Hour)

	got := Format(e, stamp)
	assert.Contains(t, got, "DTSTART:20240116T130000Z")
	assert.Contains(t, got, "DTEND:20240116T140000Z")
}

func TestEscaping(t *testing.T) {
	e := minimalEvent()
	e.Title = `a,b;c\d` + "\nnext"

	got := Format(e, stamp)
	assert.Contains(t, got, `SUMMARY:a\,b\;c\\d\nnext`)
}

func TestParse_RoundTripsOwnOutput(t *testing.T) {
	doc := FormatCalendar([]event.Event{fullEvent(), minimalEvent()}, stamp)

	parsed, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	want := fullEvent()
	got := parsed[0]
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.Start.Equal(got.Start))
	assert.True(t, want.End.Equal(got.End))
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Location, got.Location)
	assert.Equal(t, want.Attendees, got.Attendees)
	assert.Empty(t, got.ID, "parsed events are drafts; the store assigns ids")
	assert.Empty(t, got.OwnerID)

	assert.Equal(t, "Focus block", parsed[1].Title)
}

func TestParse_MailtoAttendees(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//else//EN",
		"BEGIN:VEVENT",
		"UID:x@else",
		"DTSTAMP:20240101T120000Z",
		"DTSTART:20240116T130000Z",
		"DTEND:20240116T140000Z",
		"SUMMARY:From another client",
		"ATTENDEE:mailto:a@example.com",
		"ATTENDEE:mailto:b@example.com",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	parsed, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, parsed[0].Attendees)
}

func TestParse_SkipsIncompleteEvents(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//else//EN",
		"BEGIN:VEVENT",
		"UID:no-times@else",
		"DTSTAMP:20240101T120000Z",
		"SUMMARY:No times",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ok@else",
		"DTSTAMP:20240101T120000Z",
		"DTSTART:20240116T130000Z",
		"DTEND:20240116T140000Z",
		"SUMMARY:Complete",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	parsed, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Complete", parsed[0].Title)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "team_standup.ics", Filename("Team standup"))
	// Every non-alphanumeric becomes its own underscore, runs included.
	assert.Equal(t, "1_1__sam_.ics", Filename("1:1 (Sam)"))
}
