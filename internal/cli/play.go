package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"github.com/spf13/cobra"
)

func newPlayCmd(opts *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the festival quiz and join the ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openClientRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			session := playSession{
				server:    rt.remote.BaseURL(),
				themes:    rt.themes(),
				ranking:   rt.ranking(),
				questions: rt.questionSource(),
				setID:     opts.cfg.Quiz.Set,
				total:     opts.cfg.Quiz.TotalQuestions,
				name:      name,
				prompt:    newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:       cmd.OutOrStdout(),
			}
			return session.run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nickname shown in the ranking")
	return cmd
}

type playSession struct {
	server    string
	themes    *app.ThemeSync
	ranking   *app.RankingClient
	questions app.QuestionSource
	setID     string
	total     int
	name      string
	prompt    *prompter
	out       io.Writer
}

func (s playSession) run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Quiz server: %s\n", s.server)
	fmt.Fprintf(s.out, "Theme: %s\n", s.themes.ResolveTheme(ctx))

	questions, err := s.questions.LoadQuestions(ctx, s.setID)
	if err != nil {
		return fmt.Errorf("load question set %q: %w", s.setID, err)
	}
	engine, err := app.NewQuizEngine(questions, s.total, s.ranking)
	if err != nil {
		return err
	}

	name := s.name
	for {
		if err := s.start(engine, name); err != nil {
			return err
		}
		if err := s.answerAll(ctx, engine); err != nil {
			return err
		}
		result, outcome, _ := engine.Result()
		fmt.Fprintf(s.out, "\n%s, you scored %d/%d.\n", result.UserName, result.Score, engine.Total())
		if outcome == domain.SubmitFailed {
			fmt.Fprintln(s.out, "Your score could not be sent to the ranking.")
		}
		fmt.Fprintln(s.out)
		_, _ = printRanking(ctx, s.out, s.ranking, &result)

		again, err := s.prompt.yesNo("\nPlay again? (y/n): ")
		if err != nil || !again {
			return nil
		}
		name = ""
	}
}

func (s playSession) start(engine *app.QuizEngine, name string) error {
	for {
		if name == "" {
			var err error
			if name, err = s.prompt.line("Nickname: "); err != nil {
				return err
			}
		}
		err := engine.Start(name)
		if err == nil {
			session := engine.Session()
			fmt.Fprintf(s.out, "Welcome, %s! Round started at %s.\n", session.UserName, session.StartedAt.Format("15:04:05"))
			return nil
		}
		if !errors.Is(err, domain.ErrValidation) {
			return err
		}
		fmt.Fprintln(s.out, "A nickname is required.")
		name = ""
	}
}

func (s playSession) answerAll(ctx context.Context, engine *app.QuizEngine) error {
	for engine.State() == domain.StateInProgress {
		question, err := engine.CurrentQuestion()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\nQ%d/%d: %s\n", engine.Session().CurrentQuestionIndex+1, engine.Total(), question.Text)
		for i, choice := range question.Choices {
			fmt.Fprintf(s.out, "  %s. %s\n", choiceLetter(i), choice)
		}
		choice, err := s.prompt.answer(len(question.Choices))
		if err != nil {
			return err
		}
		result, err := engine.Answer(ctx, choice)
		if err != nil {
			return err
		}
		if result.Correct {
			fmt.Fprintln(s.out, "Correct!")
		} else {
			fmt.Fprintln(s.out, "Wrong.")
		}
		fmt.Fprintf(s.out, "Score: %d\n", result.Score)
	}
	return nil
}
