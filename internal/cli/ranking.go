package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"festival-quiz/internal/export"
	"github.com/spf13/cobra"
)

func newRankingCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show, follow or export the festival ranking",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			_, err = printRanking(cmd.Context(), cmd.OutOrStdout(), rt.ranking(), nil)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Follow ranking updates live until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching the ranking at %s (Ctrl-C to stop)\n", rt.remote.BaseURL())
			return rt.remote.WatchRanking(ctx, func(entries []domain.RankingEntry) {
				fmt.Fprintln(out, "--- ranking ---")
				writeRankingView(out, app.RenderRanking(entries, nil))
			})
		},
	})

	var path string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current ranking to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			entries, err := rt.ranking().FetchRanking(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := export.WriteRankingXLSX(f, app.RenderRanking(entries, nil)); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ranking exported to %s (%d entries)\n", path, len(entries))
			return nil
		},
	}
	exportCmd.Flags().StringVar(&path, "out", "ranking.xlsx", "output file")
	cmd.AddCommand(exportCmd)
	return cmd
}

// printRanking never shows an empty list in place of an unreachable ranking.
func printRanking(ctx context.Context, out io.Writer, client *app.RankingClient, self *domain.SessionResult) (domain.RankingView, error) {
	entries, err := client.FetchRanking(ctx)
	if err != nil {
		fmt.Fprintln(out, "Ranking unavailable: the quiz server could not be reached.")
		return domain.RankingView{}, err
	}
	view := app.RenderRanking(entries, self)
	writeRankingView(out, view)
	return view, nil
}

func writeRankingView(out io.Writer, view domain.RankingView) {
	if len(view.Rows) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return
	}
	for _, row := range view.Rows {
		medal := row.Medal
		if medal == "" {
			medal = "  "
		}
		marker := ""
		if row.Self {
			marker = "  <- you"
		}
		fmt.Fprintf(out, "%2d. %s %s  %d%s\n", row.Rank, medal, row.Name, row.Score, marker)
	}
	if view.HasWinner() {
		fmt.Fprintf(out, "Winner: %s\n", view.Winner)
	}
}
