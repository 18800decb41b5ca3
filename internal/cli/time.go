package cli

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts are the formats event flags accept, tried in order. Layouts
// without a zone are interpreted in local time, matching how people type
// appointments.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// dateLayout is the format day-valued flags accept.
const dateLayout = "2006-01-02"

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD HH:MM or RFC 3339", value)
}

func parseDateFlag(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return t, nil
}

// eventLine renders one event as a single human-readable row.
func eventLine(id, title string, start, end time.Time, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s - %s  %s", shortID(id), start.Format("2006-01-02 15:04"), end.Format("15:04"), title)
	if location != "" {
		fmt.Fprintf(&b, " @ %s", location)
	}
	return b.String()
}

// shortID truncates a UUID for display; commands still accept either form.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
