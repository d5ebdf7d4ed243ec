package cli

import (
	"fmt"
	"strings"

	"festival-quiz/internal/domain"
	"github.com/spf13/cobra"
)

func newThemeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or publish the festival theme",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current theme (remote, then local cache)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			fmt.Fprintln(cmd.OutOrStdout(), rt.themes().ResolveTheme(cmd.Context()))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <theme>",
		Short: "Save the theme locally and publish it to the quiz server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			outcome, err := rt.themes().PublishTheme(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if outcome == domain.PublishSynced {
				fmt.Fprintln(out, "Theme saved and published.")
			} else {
				fmt.Fprintln(out, "Theme saved on this device only; the quiz server could not be reached.")
			}
			return nil
		},
	})
	return cmd
}
