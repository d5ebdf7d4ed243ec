package domain

import "time"

// ThemePlaceholder is shown whenever no theme is known locally or remotely.
const ThemePlaceholder = "(no theme set)"

// DraftSource tags the authoring screen a draft came from.
type DraftSource string

const (
	SourceManual DraftSource = "createQuiz"
	SourceAIChat DraftSource = "createWithAI"
)

// Choice is a single lettered option of a drafted question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionRecord is a drafted question as persisted in the local cache.
type QuestionRecord struct {
	ID         int         `json:"id"`
	Theme      string      `json:"theme"`
	Text       string      `json:"text"`
	Supplement string      `json:"supplement"`
	Choices    []Choice    `json:"choices"`
	CorrectID  string      `json:"correctId"`
	Source     DraftSource `json:"source"`
}

// DraftSummary is the one-line listing view of a draft.
type DraftSummary struct {
	ID      int
	Preview string
	Source  DraftSource
}

// NoDraftsSummary is listed when the draft store is empty.
var NoDraftsSummary = DraftSummary{ID: 0, Preview: "no drafts yet"}

// Question is a playable quiz question.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct"`
}

// QuizState is the progression state of a quiz engine.
type QuizState int

const (
	StateNotStarted QuizState = iota
	StateInProgress
	StateFinished
)

func (s QuizState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// QuizSession is the volatile state of one play-through.
type QuizSession struct {
	ID                   string
	UserName             string
	CurrentQuestionIndex int
	Score                int
	StartedAt            time.Time
}

// SessionResult identifies a completed session for ranking highlights.
type SessionResult struct {
	UserName string
	Score    int
}

// RankingEntry is one leaderboard row as returned by the remote service.
type RankingEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RankingRow is a decorated ranking entry ready for display.
type RankingRow struct {
	Rank  int
	Medal string
	Name  string
	Score int
	Self  bool
}

// RankingView is the rendered leaderboard.
type RankingView struct {
	Rows   []RankingRow
	Winner string
}

// HasWinner reports whether at least one entry was ranked.
func (v RankingView) HasWinner() bool {
	return len(v.Rows) > 0
}

// SubmitOutcome reports whether a score reached the remote ranking.
type SubmitOutcome int

const (
	SubmitNotAttempted SubmitOutcome = iota
	SubmitOK
	SubmitFailed
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitOK:
		return "ok"
	case SubmitFailed:
		return "submission_failed"
	default:
		return "not_attempted"
	}
}

// PublishOutcome reports where a theme change was stored.
type PublishOutcome int

const (
	PublishSynced PublishOutcome = iota
	PublishLocalOnly
)

func (o PublishOutcome) String() string {
	if o == PublishLocalOnly {
		return "saved_locally_only"
	}
	return "synced"
}
