package app

import (
	"context"

	"festival-quiz/internal/domain"
)

// DefaultQuestionSet names the question set played when none is configured.
const DefaultQuestionSet = "demo"

// QuestionSource loads the ordered questions of a set (static data, Postgres, remote service).
type QuestionSource interface {
	LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error)
}
