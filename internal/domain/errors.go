package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySet is returned when a filter matches no questions.
	ErrEmptySet = errors.New("no questions match the selected criteria")
	// ErrInvalidAnswer is returned for an empty or unknown option id.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrNotPresented is returned when a question action arrives outside the Presented state.
	ErrNotPresented = errors.New("no question is awaiting an answer")
	// ErrNotAdvanceable is returned when Advance is called before the current question is resolved.
	ErrNotAdvanceable = errors.New("current question is not resolved")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("quiz session already started")
	// ErrSessionNotFinished is returned when results are requested before the session ends.
	ErrSessionNotFinished = errors.New("quiz session not finished")
	// ErrHintsDisabled is returned when hints are turned off for the session.
	ErrHintsDisabled = errors.New("hints are disabled")
	// ErrHintUsed is returned on a second hint request for the same question.
	ErrHintUsed = errors.New("hint already used for this question")
	// ErrHintLimit is returned once the per-session hint allowance is spent.
	ErrHintLimit = errors.New("no hints left")
	// ErrNotHighScore is returned when a score does not qualify for the leaderboard.
	ErrNotHighScore = errors.New("score does not qualify as a high score")
	// ErrInvalidSettings wraps settings that fail validation.
	ErrInvalidSettings = errors.New("invalid quiz settings")
	// ErrAlreadyFinished is returned when a session's results were already folded into the profile.
	ErrAlreadyFinished = errors.New("session results already recorded")
	// ErrAlreadyRecorded is returned when a session's high score was already written.
	ErrAlreadyRecorded = errors.New("high score already recorded for this session")
)

// LoadError reports a missing or malformed question source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
