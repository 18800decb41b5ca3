package cli

import (
	"fmt"
	"strings"

	"github.com/aminethecode/agenda/internal/event"
)

// resolveEvent finds an event by full ID or unique ID prefix, so the short
// form printed by list works as an argument.
func resolveEvent(env *appEnv, ref string) (event.Event, error) {
	if e, ok := env.events.Get(ref); ok {
		return e, nil
	}

	var matches []event.Event
	for _, e := range env.events.List() {
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return event.Event{}, NewExitError(ExitFailure, fmt.Sprintf("no event matches %q", ref))
	case 1:
		return matches[0], nil
	default:
		return event.Event{}, NewExitError(ExitFailure, fmt.Sprintf("%q is ambiguous, matches %d events", ref, len(matches)))
	}
}
