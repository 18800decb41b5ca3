package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/schedule"
)

// NextOptions holds flags for the next command.
type NextOptions struct {
	*RootOptions
	Duration int
	From     string
}

// NewNextCommand creates the next command.
func NewNextCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NextOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Find the next open slot during working hours",
		Example: `  agenda next --duration 45
  agenda next --duration 90 --from 2026-03-02`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Duration, "duration", 0, "slot length in minutes")
	cmd.Flags().StringVar(&opts.From, "from", "", "day to start searching from (YYYY-MM-DD), default today")

	return cmd
}

func runNext(opts *NextOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	minutes := opts.Duration
	if minutes <= 0 {
		minutes = env.cfg.DefaultDurationMinutes
	}
	length := time.Duration(minutes) * time.Minute

	anchor := time.Now()
	if opts.From != "" {
		day, err := parseDateFlag(opts.From)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		anchor = day
	}

	slot := schedule.NextAvailable(anchor, length, env.events.List(), schedule.Options{
		WorkStartHour: env.cfg.WorkStartHour,
		WorkEndHour:   env.cfg.WorkEndHour,
		MaxDays:       env.cfg.MaxDaysToSearch,
	})

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(map[string]any{
			"start":            slot.Start,
			"end":              slot.Start.Add(length),
			"spilledToNextDay": slot.SpilledToNextDay,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Next open slot: %s - %s\n", slot.Start.Format("2006-01-02 15:04"), slot.Start.Add(length).Format("15:04"))
	if slot.SpilledToNextDay {
		fmt.Fprintln(w, "(no free slot within the search window; suggesting the following morning)")
	}
	return nil
}
