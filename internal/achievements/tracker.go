// Package achievements evaluates unlock conditions against finished sessions.
package achievements

import (
	"sort"
	"time"

	"quizmaster/internal/domain"
)

// Kind selects the predicate an achievement is tested with.
type Kind int

const (
	// KindMinScore unlocks when the session score reaches Threshold.
	KindMinScore Kind = iota
	// KindMinAccuracy unlocks when accuracy (percent) reaches Threshold over at least MinQuestions attempts.
	KindMinAccuracy
	// KindMinStreak unlocks when the longest streak reaches Threshold.
	KindMinStreak
	// KindMaxAverageTime unlocks when the average answer time is at most Threshold seconds
	// over at least MinQuestions attempts.
	KindMaxAverageTime
	// KindNoHints unlocks for a hint-free session with accuracy of at least Threshold.
	KindNoHints
	// KindMinGames unlocks when the lifetime games played reaches Threshold.
	KindMinGames
)

// Definition describes one achievement.
type Definition struct {
	ID           string
	Description  string
	Kind         Kind
	Threshold    float64
	MinQuestions int
}

// Status pairs a definition with whether the player has unlocked it.
type Status struct {
	Definition
	Unlocked bool
}

// Catalog is the built-in set of achievements.
func Catalog() []Definition {
	return []Definition{
		{ID: "first_game", Description: "Finish your first quiz", Kind: KindMinGames, Threshold: 1},
		{ID: "perfect_round", Description: "Answer every question correctly", Kind: KindMinAccuracy, Threshold: 100, MinQuestions: 5},
		{ID: "streak_5", Description: "Reach a streak of 5 correct answers", Kind: KindMinStreak, Threshold: 5},
		{ID: "speed_demon", Description: "Average under 5 seconds per answer", Kind: KindMaxAverageTime, Threshold: 5, MinQuestions: 5},
		{ID: "high_scorer", Description: "Score 150 points in one quiz", Kind: KindMinScore, Threshold: 150},
		{ID: "no_hints", Description: "Score 80% accuracy without hints", Kind: KindNoHints, Threshold: 80, MinQuestions: 5},
		{ID: "veteran", Description: "Play 10 quizzes", Kind: KindMinGames, Threshold: 10},
	}
}

// Tracker evaluates a fixed set of definitions. It holds no per-player state.
type Tracker struct {
	defs []Definition
}

func NewTracker(defs []Definition) *Tracker {
	return &Tracker{defs: defs}
}

// Definitions returns the tracked achievements.
func (t *Tracker) Definitions() []Definition {
	out := make([]Definition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Evaluate returns the ids newly unlocked by summary. profile must already include the session.
func (t *Tracker) Evaluate(summary domain.SessionSummary, profile domain.PlayerProfile) []string {
	var unlocked []string
	for _, def := range t.defs {
		if profile.Achievements[def.ID] {
			continue
		}
		if def.met(summary, profile) {
			unlocked = append(unlocked, def.ID)
		}
	}
	sort.Strings(unlocked)
	return unlocked
}

// Statuses lists every definition with the profile's unlock flag.
func (t *Tracker) Statuses(profile domain.PlayerProfile) []Status {
	out := make([]Status, 0, len(t.defs))
	for _, def := range t.defs {
		out = append(out, Status{Definition: def, Unlocked: profile.Achievements[def.ID]})
	}
	return out
}

func (d Definition) met(s domain.SessionSummary, p domain.PlayerProfile) bool {
	switch d.Kind {
	case KindMinScore:
		return float64(s.Score) >= d.Threshold
	case KindMinAccuracy:
		return s.Attempted() >= d.MinQuestions && s.Attempted() > 0 && s.Accuracy() >= d.Threshold
	case KindMinStreak:
		return float64(s.LongestStreak) >= d.Threshold
	case KindMaxAverageTime:
		limit := time.Duration(d.Threshold * float64(time.Second))
		return s.Attempted() >= d.MinQuestions && s.Attempted() > 0 && s.AverageTime <= limit
	case KindNoHints:
		return s.HintsUsed == 0 && s.Attempted() >= d.MinQuestions && s.Attempted() > 0 && s.Accuracy() >= d.Threshold
	case KindMinGames:
		return float64(p.GamesPlayed) >= d.Threshold
	}
	return false
}
