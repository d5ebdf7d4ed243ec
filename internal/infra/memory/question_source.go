package memory

import (
	"context"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
)

// StaticQuestionSource serves question sets from an in-memory map (demos and tests).
type StaticQuestionSource struct {
	sets map[string][]domain.Question
}

func NewStaticQuestionSource(sets map[string][]domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{sets: sets}
}

// NewDemoQuestionSource serves DemoQuestions under app.DefaultQuestionSet.
func NewDemoQuestionSource() *StaticQuestionSource {
	return NewStaticQuestionSource(map[string][]domain.Question{
		app.DefaultQuestionSet: DemoQuestions(),
	})
}

func (s *StaticQuestionSource) LoadQuestions(_ context.Context, setID string) ([]domain.Question, error) {
	questions, ok := s.sets[setID]
	if !ok {
		return nil, domain.ErrQuestionSetNotFound
	}
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}

// DemoQuestions is the museum round played at the festival booth.
func DemoQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:           "aizu-1",
			Text:         "Which Edo-period book, written by a village leader in the Aizu region, records the farming techniques and everyday know-how of the time?",
			Choices:      []string{"Aizu Nosho", "Nogyo Zensho", "Hyakusho Denki", "Aizu Fudoki"},
			CorrectIndex: 0,
		},
		{
			ID:           "aizu-2",
			Text:         "Some farm tools in the museum collection carry ink notes of the purchase date, price and shop name. What are such objects called?",
			Choices:      []string{"Dated folk tools", "Ink-inscribed pottery", "Tools with history", "Memo implements"},
			CorrectIndex: 0,
		},
		{
			ID:           "aizu-3",
			Text:         "Which tool, common from the mid Edo period, threshes rice with a row of iron teeth?",
			Choices:      []string{"Senbakoki", "Tomi winnower", "Fumiguruma", "Bitchu hoe"},
			CorrectIndex: 0,
		},
	}
}
