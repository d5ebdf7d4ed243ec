package domain

import "errors"

var (
	// ErrValidation is returned when required user input is missing.
	ErrValidation = errors.New("validation failed")
	// ErrTransport indicates the remote service was unreachable or answered non-2xx.
	ErrTransport = errors.New("remote service unavailable")
	// ErrMalformedData indicates corrupt persisted or remote data.
	ErrMalformedData = errors.New("malformed data")
	// ErrRankingUnavailable is returned when the leaderboard could not be fetched.
	ErrRankingUnavailable = errors.New("ranking unavailable")
	// ErrInvalidState is returned when a quiz operation is called in the wrong state.
	ErrInvalidState = errors.New("invalid quiz state")
	// ErrQuestionSetTooShort indicates fewer questions than the quiz length.
	ErrQuestionSetTooShort = errors.New("question set shorter than quiz length")
	// ErrQuestionSetNotFound indicates the question set could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
)
