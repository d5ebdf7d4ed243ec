package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"festival-quiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads question set JSONB from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionSetNotFound, setID)
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("%w: question set %s: %v", domain.ErrMalformedData, setID, err)
	}
	return questions, nil
}

// SaveQuestions upserts a question set.
func (l *QuestionLoader) SaveQuestions(ctx context.Context, setID string, questions []domain.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO question_sets (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, setID, string(data))
	if err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}
