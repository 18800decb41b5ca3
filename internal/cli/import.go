package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/ics"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <file.ics>",
		Short:         "Import events from an iCalendar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "open file", err)
			}
			defer f.Close()

			drafts, err := ics.Parse(f)
			if err != nil {
				return WrapExitError(ExitFailure, "parse calendar", err)
			}
			if len(drafts) == 0 {
				return NewExitError(ExitFailure, "no importable events found")
			}

			w := cmd.OutOrStdout()
			for _, d := range drafts {
				created, err := env.events.Add(cmd.Context(), d)
				if err != nil {
					return eventError(err)
				}
				fmt.Fprintf(w, "Imported %s\n", eventLine(created.ID, created.Title, created.Start, created.End, created.Location))
			}
			fmt.Fprintf(w, "%d event(s) imported\n", len(drafts))
			return nil
		},
	}
}
