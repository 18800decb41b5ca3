package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <event-id>",
		Short:         "Delete an event you own",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			e, err := resolveEvent(env, args[0])
			if err != nil {
				return err
			}
			if err := env.events.Delete(cmd.Context(), e.ID); err != nil {
				return eventError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", e.Title)
			return nil
		},
	}
}
