// Package interval provides pure arithmetic over (start, end) time pairs.
//
// An interval is treated as half-open on both comparisons that matter for
// scheduling: two intervals that merely touch at an endpoint do not overlap.
package interval

import "time"

// Overlaps reports whether the intervals [aStart, aEnd) and [bStart, bEnd)
// share any instant. Three cases count as overlap:
//
//   - a starts inside b
//   - a ends inside b
//   - a fully contains b
//
// Touching endpoints (aEnd == bStart, or bEnd == aStart) are not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	// a starts inside [bStart, bEnd)
	if !aStart.Before(bStart) && aStart.Before(bEnd) {
		return true
	}
	// a ends inside (bStart, bEnd]
	if aEnd.After(bStart) && !aEnd.After(bEnd) {
		return true
	}
	// a contains b
	if !aStart.After(bStart) && !aEnd.Before(bEnd) {
		return true
	}
	return false
}

// Duration returns the span of [start, end). Negative if end precedes start.
func Duration(start, end time.Time) time.Duration {
	return end.Sub(start)
}
