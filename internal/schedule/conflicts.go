// Package schedule implements the scheduling queries on top of the event
// collection: conflict detection against a candidate interval, and the
// next-available-slot search over a bounded horizon.
package schedule

import (
	"time"

	"github.com/aminethecode/agenda/internal/event"
	"github.com/aminethecode/agenda/internal/interval"
)

// FindConflicts returns the events in existing that overlap the candidate
// interval [start, end), preserving the order of existing. An empty result
// means the candidate is safe to schedule.
//
// This is a pure query: existing is never mutated, and the caller is
// responsible for start < end. Whether to proceed despite conflicts is a
// caller-side decision; the detector has no bypass concept.
func FindConflicts(start, end time.Time, existing []event.Event) []event.Event {
	var conflicts []event.Event
	for _, e := range existing {
		if interval.Overlaps(start, end, e.Start, e.End) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}
