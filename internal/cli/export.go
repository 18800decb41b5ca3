package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/ics"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [event-id]",
		Short: "Export events as iCalendar",
		Long: `Export a single event, or the whole calendar when no ID is given.
Output goes to stdout unless --out names a file.`,
		Args:    cobra.MaximumNArgs(1),
		Example: `  agenda export > calendar.ics
  agenda export 4f1f9f2a --out review.ics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "write to this file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	now := time.Now()

	var data string
	if len(args) == 1 {
		e, err := resolveEvent(env, args[0])
		if err != nil {
			return err
		}
		data = ics.Format(e, now)
	} else {
		events := env.events.List()
		if len(events) == 0 {
			return NewExitError(ExitFailure, "nothing to export")
		}
		data = ics.FormatCalendar(events, now)
	}

	if opts.Out == "" || opts.Out == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), data)
		return nil
	}
	if err := os.WriteFile(opts.Out, []byte(data+"\r\n"), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write file", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Out)
	return nil
}
