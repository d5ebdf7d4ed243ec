package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"github.com/spf13/cobra"
)

func newDraftCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Author quiz questions on this device",
	}
	cmd.AddCommand(newDraftAddCmd(opts), newDraftListCmd(opts))
	return cmd
}

func newDraftAddCmd(opts *options) *cobra.Command {
	var (
		fields  app.DraftFields
		choices []string
		fromAI  bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a drafted question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			fields.Choices = make([]domain.Choice, 0, len(choices))
			for i, text := range choices {
				fields.Choices = append(fields.Choices, domain.Choice{ID: choiceLetter(i), Text: text})
			}
			fields.CorrectID = strings.ToUpper(strings.TrimSpace(fields.CorrectID))
			fields.Source = domain.SourceManual
			if fromAI {
				fields.Source = domain.SourceAIChat
			}
			return addDraft(cmd.Context(), cmd.OutOrStdout(), app.NewDraftStore(cmd.Context(), rt.cache), fields)
		},
	}
	cmd.Flags().StringVar(&fields.Theme, "theme", "", "theme of the question (defaults to the cached theme)")
	cmd.Flags().StringVar(&fields.Text, "text", "", "question text")
	cmd.Flags().StringVar(&fields.Supplement, "supplement", "", "explanation shown after answering")
	cmd.Flags().StringArrayVar(&choices, "choice", nil, "answer choice, repeat for each (lettered A, B, ...)")
	cmd.Flags().StringVar(&fields.CorrectID, "correct", "", "letter of the correct choice")
	cmd.Flags().BoolVar(&fromAI, "ai", false, "mark the draft as written with the AI assistant")
	return cmd
}

func addDraft(ctx context.Context, out io.Writer, store *app.DraftStore, fields app.DraftFields) error {
	record, err := store.AppendDraft(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Draft %d saved (theme: %s)\n", record.ID, record.Theme)
	return nil
}

func newDraftListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafted questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			writeDraftSummaries(cmd.OutOrStdout(), app.NewDraftStore(cmd.Context(), rt.cache).ListDraftSummaries())
			return nil
		},
	}
}

func writeDraftSummaries(out io.Writer, summaries []domain.DraftSummary) {
	for _, s := range summaries {
		if s == domain.NoDraftsSummary {
			fmt.Fprintln(out, s.Preview)
			continue
		}
		fmt.Fprintf(out, "Draft %d: %s (source: %s)\n", s.ID, s.Preview, s.Source)
	}
}
