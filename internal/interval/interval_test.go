package interval

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.January, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical intervals", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"a starts inside b", at(9, 30), at(11, 0), at(9, 0), at(10, 0), true},
		{"a ends inside b", at(9, 30), at(10, 30), at(10, 0), at(11, 0), true},
		{"a contains b", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"b contains a", at(10, 0), at(11, 0), at(9, 0), at(12, 0), true},
		{"disjoint before", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"disjoint after", at(12, 0), at(13, 0), at(10, 0), at(11, 0), false},
		{"touching: a ends where b starts", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"touching: b ends where a starts", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"one minute of overlap", at(9, 0), at(10, 1), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	// Overlap is symmetric: swapping the two intervals never changes the answer.
	pairs := [][4]time.Time{
		{at(9, 0), at(10, 0), at(9, 30), at(10, 30)},
		{at(9, 0), at(10, 0), at(10, 0), at(11, 0)},
		{at(9, 0), at(12, 0), at(10, 0), at(11, 0)},
		{at(8, 0), at(9, 0), at(10, 0), at(11, 0)},
	}
	for _, p := range pairs {
		ab := Overlaps(p[0], p[1], p[2], p[3])
		ba := Overlaps(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("Overlaps not symmetric for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(at(9, 0), at(10, 30)); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", got)
	}
	if got := Duration(at(10, 0), at(9, 0)); got != -time.Hour {
		t.Errorf("Duration() = %v, want -1h", got)
	}
}
