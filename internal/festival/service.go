package festival

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
)

// Service implements the remote half of the festival quiz contract: the shared theme,
// score submission, the ranking and the question sets.
type Service struct {
	themes    app.KeyValueStore
	board     *Board
	questions app.QuestionSource
}

func NewService(themes app.KeyValueStore, board *Board, questions app.QuestionSource) *Service {
	return &Service{themes: themes, board: board, questions: questions}
}

// CurrentTheme returns "" when no theme was saved yet.
func (s *Service) CurrentTheme(ctx context.Context) (string, error) {
	theme, _, err := s.themes.Get(ctx, app.ThemeKey)
	return theme, err
}

func (s *Service) SaveTheme(ctx context.Context, theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return fmt.Errorf("%w: theme is required", domain.ErrValidation)
	}
	return s.themes.Set(ctx, app.ThemeKey, theme)
}

// Submit parses a "<name>,<score>" body and records it.
func (s *Service) Submit(_ context.Context, body string) (domain.RankingEntry, error) {
	entry, err := ParseSubmission(body)
	if err != nil {
		return domain.RankingEntry{}, err
	}
	s.board.Submit(entry.Name, entry.Score)
	return entry, nil
}

func (s *Service) Ranking(_ context.Context) []domain.RankingEntry {
	return s.board.Snapshot()
}

// Reset starts a new round.
func (s *Service) Reset(_ context.Context) {
	s.board.Reset()
}

func (s *Service) Questions(ctx context.Context, setID string) ([]domain.Question, error) {
	if strings.TrimSpace(setID) == "" {
		setID = app.DefaultQuestionSet
	}
	return s.questions.LoadQuestions(ctx, setID)
}

// Subscribe streams ranking snapshots; see Board.Subscribe.
func (s *Service) Subscribe(_ context.Context) (<-chan []domain.RankingEntry, func()) {
	return s.board.Subscribe()
}

// ParseSubmission splits body at its last comma, so names containing commas still parse.
func ParseSubmission(body string) (domain.RankingEntry, error) {
	body = strings.TrimSpace(body)
	idx := strings.LastIndex(body, ",")
	if idx < 0 {
		return domain.RankingEntry{}, fmt.Errorf("%w: expected <name>,<score>", domain.ErrValidation)
	}
	name := strings.TrimSpace(body[:idx])
	if name == "" {
		return domain.RankingEntry{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	score, err := strconv.Atoi(strings.TrimSpace(body[idx+1:]))
	if err != nil || score < 0 {
		return domain.RankingEntry{}, fmt.Errorf("%w: score must be a non-negative integer", domain.ErrValidation)
	}
	return domain.RankingEntry{Name: name, Score: score}, nil
}
