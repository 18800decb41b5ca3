package schedule

import "time"

// Clock supplies wall-clock time to the availability search. Injecting it
// keeps search results deterministic under test; production code uses
// SystemClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
