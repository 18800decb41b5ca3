package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/event"
	"github.com/aminethecode/agenda/internal/schedule"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title         string
	Start         string
	End           string
	Duration      int
	Description   string
	Location      string
	Attendees     []string
	Force         bool
	NextAvailable bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a new event",
		Long: `Schedule a new event. When the requested interval collides with
existing events the command lists the conflicts and refuses; pass --force to
book it anyway, or --next-available to take the first open slot instead.`,
		Example: `  agenda add --title "Design review" --start "2026-03-02 14:00" --duration 60
  agenda add --title "Focus block" --duration 90 --next-available`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "event title (required)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "start time, e.g. \"2026-03-02 14:00\"")
	cmd.Flags().StringVar(&opts.End, "end", "", "end time; defaults to start plus --duration")
	cmd.Flags().IntVar(&opts.Duration, "duration", 0, "length in minutes when --end is not given")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form notes")
	cmd.Flags().StringVar(&opts.Location, "location", "", "where the event happens")
	cmd.Flags().StringSliceVar(&opts.Attendees, "attendee", nil, "attendee email, repeatable")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "book even when the slot conflicts")
	cmd.Flags().BoolVar(&opts.NextAvailable, "next-available", false, "place the event in the first open working-hours slot")
	cmd.MarkFlagRequired("title")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	start, end, err := resolveInterval(opts, env)
	if err != nil {
		return err
	}

	if !opts.Force && !opts.NextAvailable {
		conflicts := schedule.FindConflicts(start, end, env.events.List())
		if len(conflicts) > 0 {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Conflicts with %d event(s):\n", len(conflicts))
			for _, c := range conflicts {
				fmt.Fprintf(w, "  %s\n", eventLine(c.ID, c.Title, c.Start, c.End, c.Location))
			}
			return NewExitError(ExitFailure, "slot is taken; rerun with --force or --next-available")
		}
	}

	created, err := env.events.Add(cmd.Context(), event.Event{
		Title:       opts.Title,
		Start:       start,
		End:         end,
		Description: opts.Description,
		Location:    opts.Location,
		Attendees:   opts.Attendees,
	})
	if err != nil {
		return eventError(err)
	}

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", eventLine(created.ID, created.Title, created.Start, created.End, created.Location))
	return nil
}

// resolveInterval turns the add flags into a concrete [start, end) pair,
// running the open-slot search when --next-available is set.
func resolveInterval(opts *AddOptions, env *appEnv) (time.Time, time.Time, error) {
	minutes := opts.Duration
	if minutes <= 0 {
		minutes = env.cfg.DefaultDurationMinutes
	}
	length := time.Duration(minutes) * time.Minute

	if opts.NextAvailable {
		anchor := time.Now()
		if opts.Start != "" {
			t, err := parseTimeFlag(opts.Start)
			if err != nil {
				return time.Time{}, time.Time{}, NewExitError(ExitCommandError, err.Error())
			}
			anchor = t
		}
		slot := schedule.NextAvailable(anchor, length, env.events.List(), schedule.Options{
			WorkStartHour: env.cfg.WorkStartHour,
			WorkEndHour:   env.cfg.WorkEndHour,
			MaxDays:       env.cfg.MaxDaysToSearch,
		})
		return slot.Start, slot.Start.Add(length), nil
	}

	if opts.Start == "" {
		return time.Time{}, time.Time{}, NewExitError(ExitCommandError, "--start is required unless --next-available is set")
	}
	start, err := parseTimeFlag(opts.Start)
	if err != nil {
		return time.Time{}, time.Time{}, NewExitError(ExitCommandError, err.Error())
	}

	if opts.End != "" {
		end, err := parseTimeFlag(opts.End)
		if err != nil {
			return time.Time{}, time.Time{}, NewExitError(ExitCommandError, err.Error())
		}
		return start, end, nil
	}
	return start, start.Add(length), nil
}

// eventError maps event store failures to user-facing exit errors.
func eventError(err error) error {
	switch {
	case errors.Is(err, event.ErrNoIdentity):
		return WrapExitError(ExitFailure, "sign in first (agenda login)", err)
	case errors.Is(err, event.ErrNotFound):
		return WrapExitError(ExitFailure, "no such event", err)
	case errors.Is(err, event.ErrNotOwner):
		return WrapExitError(ExitFailure, "event belongs to another account", err)
	case errors.Is(err, event.ErrInvalidInterval), errors.Is(err, event.ErrInvalidEvent):
		return WrapExitError(ExitFailure, "invalid event", err)
	default:
		return WrapExitError(ExitCommandError, "event store", err)
	}
}
