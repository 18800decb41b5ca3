package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/event"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Day  string
	Mine bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled events",
		Example: `  agenda list
  agenda list --day 2026-03-02 --mine`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "only events on this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "only events owned by the signed-in account")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	var events []event.Event
	if opts.Mine {
		owner := env.identity.CurrentUserID()
		if owner == "" {
			return NewExitError(ExitFailure, "not signed in")
		}
		events = env.events.ListOwned(owner)
	} else {
		events = env.events.List()
	}

	if opts.Day != "" {
		day, err := parseDateFlag(opts.Day)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		events = filterDay(events, day)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(events)
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return nil
	}
	for _, e := range events {
		fmt.Fprintln(w, eventLine(e.ID, e.Title, e.Start, e.End, e.Location))
	}
	return nil
}

func filterDay(events []event.Event, day time.Time) []event.Event {
	y, m, d := day.Date()
	var kept []event.Event
	for _, e := range events {
		ey, em, ed := e.Start.In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			kept = append(kept, e)
		}
	}
	return kept
}
