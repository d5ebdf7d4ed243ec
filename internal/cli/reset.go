package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the ranking for everyone and start a new round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				ok, err := newPrompter(cmd.InOrStdin(), out).yesNo("Reset the ranking for everyone? (y/n): ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
			}

			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.ranking().ResetRanking(cmd.Context(), nil); err != nil {
				return fmt.Errorf("reset ranking: %w", err)
			}
			fmt.Fprintln(out, "Ranking reset. A new round can begin.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
