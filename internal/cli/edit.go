package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title       string
	Start       string
	End         string
	Description string
	Location    string
	Attendees   []string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "edit <event-id>",
		Short:         "Change an event you own",
		Args:          cobra.ExactArgs(1),
		Example:       `  agenda edit 4f1f9f2a --start "2026-03-02 15:00" --end "2026-03-02 16:00"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "new title")
	cmd.Flags().StringVar(&opts.Start, "start", "", "new start time")
	cmd.Flags().StringVar(&opts.End, "end", "", "new end time")
	cmd.Flags().StringVar(&opts.Description, "description", "", "new description")
	cmd.Flags().StringVar(&opts.Location, "location", "", "new location")
	cmd.Flags().StringSliceVar(&opts.Attendees, "attendee", nil, "replace the attendee list, repeatable")

	return cmd
}

func runEdit(opts *EditOptions, cmd *cobra.Command, ref string) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	e, err := resolveEvent(env, ref)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		e.Title = opts.Title
	}
	if flags.Changed("start") {
		t, err := parseTimeFlag(opts.Start)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		e.Start = t
	}
	if flags.Changed("end") {
		t, err := parseTimeFlag(opts.End)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		e.End = t
	}
	if flags.Changed("description") {
		e.Description = opts.Description
	}
	if flags.Changed("location") {
		e.Location = opts.Location
	}
	if flags.Changed("attendee") {
		e.Attendees = opts.Attendees
	}

	updated, err := env.events.Update(cmd.Context(), e)
	if err != nil {
		return eventError(err)
	}

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", eventLine(updated.ID, updated.Title, updated.Start, updated.End, updated.Location))
	return nil
}
