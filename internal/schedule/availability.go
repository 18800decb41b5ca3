package schedule

import (
	"sort"
	"time"

	"github.com/aminethecode/agenda/internal/event"
	"github.com/aminethecode/agenda/internal/interval"
)

// Search defaults, matching a 9-to-5 working day and a one-week horizon.
const (
	DefaultWorkStartHour = 9
	DefaultWorkEndHour   = 17
	DefaultMaxDays       = 7
)

// Slot is a suggested start time for a requested duration. It is transient
// output, never persisted.
type Slot struct {
	Start            time.Time
	SpilledToNextDay bool
}

// Options bound the availability search. Zero values fall back to the
// package defaults.
type Options struct {
	WorkStartHour int
	WorkEndHour   int
	MaxDays       int
	Clock         Clock
}

func (o Options) withDefaults() Options {
	if o.WorkStartHour == 0 {
		o.WorkStartHour = DefaultWorkStartHour
	}
	if o.WorkEndHour == 0 {
		o.WorkEndHour = DefaultWorkEndHour
	}
	if o.MaxDays == 0 {
		o.MaxDays = DefaultMaxDays
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	return o
}

// NextAvailable finds the earliest slot of the given duration that does not
// conflict with any existing event, walking day by day from anchor for up
// to MaxDays.
//
// Each day starts at WorkStartHour, or — when the day is today and the wall
// clock is already past that — at the current time rounded up to the next
// half hour. On a conflict the candidate jumps directly to the conflicting
// event's end and is re-tested, so a single long event is skipped in one
// step. The walk is gated on the candidate's start hour, not its end, so a
// returned slot may run past WorkEndHour by up to the requested duration.
//
// If the whole horizon is exhausted the fallback is WorkStartHour on the
// day after anchor, flagged as spilled. The fallback is deliberately not
// checked against conflicts: it is a best-effort default, not a guarantee.
func NextAvailable(anchor time.Time, duration time.Duration, existing []event.Event, opts Options) Slot {
	o := opts.withDefaults()

	day := anchor
	for daysChecked := 0; daysChecked < o.MaxDays; daysChecked++ {
		dayEvents := eventsOnDay(existing, day)

		candidate := time.Date(day.Year(), day.Month(), day.Day(), o.WorkStartHour, 0, 0, 0, day.Location())

		// Read "now" once per day iteration to keep a single call
		// deterministic.
		now := o.Clock.Now()
		if sameDay(day, now) && now.After(candidate) {
			candidate = roundUpToHalfHour(now, day)
		}

		for candidate.Hour() < o.WorkEndHour {
			end := candidate.Add(duration)
			if blocker, ok := firstConflict(candidate, end, dayEvents); ok {
				// Jump past the blocking event and re-test from there.
				// The blocker may carry a different zone; keep the
				// candidate in the walk day's zone so the hour gate
				// stays meaningful.
				candidate = blocker.End.In(day.Location())
				continue
			}
			return Slot{Start: candidate, SpilledToNextDay: daysChecked > 0}
		}

		day = day.AddDate(0, 0, 1)
	}

	// Horizon exhausted: fall back to the morning after the original anchor.
	fallback := time.Date(anchor.Year(), anchor.Month(), anchor.Day()+1, o.WorkStartHour, 0, 0, 0, anchor.Location())
	return Slot{Start: fallback, SpilledToNextDay: true}
}

// firstConflict returns the first event in dayEvents that overlaps
// [start, end).
func firstConflict(start, end time.Time, dayEvents []event.Event) (event.Event, bool) {
	for _, e := range dayEvents {
		if interval.Overlaps(start, end, e.Start, e.End) {
			return e, true
		}
	}
	return event.Event{}, false
}

// eventsOnDay returns the events starting on the same calendar day as day,
// sorted ascending by start time. The input slice is left untouched.
func eventsOnDay(events []event.Event, day time.Time) []event.Event {
	var out []event.Event
	for _, e := range events {
		if sameDay(e.Start, day) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// sameDay compares calendar days in b's location. Stored events carry UTC
// after rehydration while anchors are usually local, so comparing each
// side in its own zone would miss same-day events across the offset.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// roundUpToHalfHour maps now onto day at the next 30-minute boundary:
// minutes 0 through 30 become :30, later minutes roll to the next hour.
func roundUpToHalfHour(now time.Time, day time.Time) time.Time {
	if now.Minute() <= 30 {
		return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), 30, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), now.Hour()+1, 0, 0, 0, day.Location())
}
