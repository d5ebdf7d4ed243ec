package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"festival-quiz/internal/domain"
	"github.com/google/uuid"
)

// DefaultTotalQuestions is the length of a festival round.
const DefaultTotalQuestions = 3

// Submitter receives the final score when a quiz finishes.
type Submitter interface {
	SubmitScore(ctx context.Context, userName string, score int) domain.SubmitOutcome
}

// Transition is delivered to listeners after every state change.
type Transition struct {
	From    domain.QuizState
	To      domain.QuizState
	Session domain.QuizSession
}

// AnswerResult is the immediate feedback for one answer.
type AnswerResult struct {
	Correct    bool
	Finished   bool
	Score      int
	Submission domain.SubmitOutcome
}

// QuizEngine drives one participant through a fixed, ordered question set.
// It is not safe for concurrent use; callers drive it from a single goroutine.
type QuizEngine struct {
	questions []domain.Question
	total     int
	submitter Submitter
	now       func() time.Time

	state      domain.QuizState
	session    domain.QuizSession
	submission domain.SubmitOutcome
	listeners  []func(Transition)
}

// NewQuizEngine plays the first total questions of questions.
func NewQuizEngine(questions []domain.Question, total int, submitter Submitter) (*QuizEngine, error) {
	return NewQuizEngineWithClock(questions, total, submitter, time.Now)
}

// NewQuizEngineWithClock allows deterministic session timestamps in tests.
func NewQuizEngineWithClock(questions []domain.Question, total int, submitter Submitter, now func() time.Time) (*QuizEngine, error) {
	if total <= 0 || total > len(questions) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrQuestionSetTooShort, total, len(questions))
	}
	set := make([]domain.Question, total)
	copy(set, questions[:total])
	return &QuizEngine{
		questions: set,
		total:     total,
		submitter: submitter,
		now:       now,
		state:     domain.StateNotStarted,
	}, nil
}

// OnTransition registers fn to be called after each state change.
func (e *QuizEngine) OnTransition(fn func(Transition)) {
	e.listeners = append(e.listeners, fn)
}

// Start begins a new session. It may be called from any state.
func (e *QuizEngine) Start(userName string) error {
	name := strings.TrimSpace(userName)
	if name == "" {
		return fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	e.session = domain.QuizSession{
		ID:        uuid.NewString(),
		UserName:  name,
		StartedAt: e.now(),
	}
	e.submission = domain.SubmitNotAttempted
	e.transition(domain.StateInProgress)
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (e *QuizEngine) CurrentQuestion() (domain.Question, error) {
	if e.state != domain.StateInProgress {
		return domain.Question{}, fmt.Errorf("%w: %s", domain.ErrInvalidState, e.state)
	}
	idx := e.session.CurrentQuestionIndex
	if idx < 0 || idx >= len(e.questions) {
		panic(fmt.Sprintf("quiz engine: question index %d out of range [0,%d)", idx, len(e.questions)))
	}
	return e.questions[idx], nil
}

// Answer scores choiceIndex against the current question and advances. Indices outside
// the choice list count as wrong. The last answer finishes the quiz and submits the score once.
func (e *QuizEngine) Answer(ctx context.Context, choiceIndex int) (AnswerResult, error) {
	question, err := e.CurrentQuestion()
	if err != nil {
		return AnswerResult{}, err
	}

	correct := choiceIndex == question.CorrectIndex
	if correct {
		e.session.Score++
	}
	e.session.CurrentQuestionIndex++

	result := AnswerResult{Correct: correct, Score: e.session.Score}
	if e.session.CurrentQuestionIndex < e.total {
		return result, nil
	}

	e.transition(domain.StateFinished)
	result.Finished = true
	if e.submitter != nil {
		e.submission = e.submitter.SubmitScore(ctx, e.session.UserName, e.session.Score)
		if e.submission == domain.SubmitFailed {
			log.Printf("quiz %s: score for %q not submitted", e.session.ID, e.session.UserName)
		}
	}
	result.Submission = e.submission
	return result, nil
}

// Reset discards the session and returns to NotStarted.
func (e *QuizEngine) Reset() {
	e.session = domain.QuizSession{}
	e.submission = domain.SubmitNotAttempted
	e.transition(domain.StateNotStarted)
}

func (e *QuizEngine) State() domain.QuizState {
	return e.state
}

func (e *QuizEngine) Session() domain.QuizSession {
	return e.session
}

func (e *QuizEngine) Total() int {
	return e.total
}

// Result returns the finished session and its submission outcome; ok is false before Finished.
func (e *QuizEngine) Result() (domain.SessionResult, domain.SubmitOutcome, bool) {
	if e.state != domain.StateFinished {
		return domain.SessionResult{}, domain.SubmitNotAttempted, false
	}
	return domain.SessionResult{UserName: e.session.UserName, Score: e.session.Score}, e.submission, true
}

func (e *QuizEngine) transition(to domain.QuizState) {
	from := e.state
	e.state = to
	t := Transition{From: from, To: to, Session: e.session}
	for _, fn := range e.listeners {
		fn(t)
	}
}
