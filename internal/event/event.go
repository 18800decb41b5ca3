// Package event holds the calendar event model and the owner-scoped store
// that is the authoritative source of truth for a running process.
package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Event is a single timed calendar entry.
//
// ID and OwnerID are assigned by the store on Add and are immutable
// afterwards; Update replaces every other field wholesale.
type Event struct {
	ID          string
	OwnerID     string
	Title       string `validate:"required"`
	Start       time.Time
	End         time.Time
	Description string
	Location    string
	Attendees   []string `validate:"omitempty,dive,email"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the fields a caller controls: title must be non-empty,
// the interval must have positive duration, and attendees must look like
// email addresses. ID and OwnerID are not the caller's to validate.
func (e Event) Validate() error {
	if !e.Start.Before(e.End) {
		return ErrInvalidInterval
	}
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

// normalizeAttendees treats the attendee list as an ordered set: duplicates
// are dropped keeping the first occurrence, surrounding whitespace is
// trimmed, and empty entries are discarded.
func normalizeAttendees(attendees []string) []string {
	if len(attendees) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(attendees))
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
