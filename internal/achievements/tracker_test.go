package achievements

import (
	"testing"
	"time"

	"quizmaster/internal/domain"
)

func TestEvaluateUnlocksMatchingAchievements(t *testing.T) {
	tracker := NewTracker(Catalog())
	profile := domain.NewPlayerProfile("alice")
	summary := domain.SessionSummary{
		Score:          160,
		TotalQuestions: 10,
		Correct:        10,
		LongestStreak:  10,
		AverageTime:    3 * time.Second,
	}
	profile.Record(summary)

	got := tracker.Evaluate(summary, profile)
	want := []string{"first_game", "high_scorer", "no_hints", "perfect_round", "speed_demon", "streak_5"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	tracker := NewTracker(Catalog())
	profile := domain.NewPlayerProfile("bob")
	profile.Unlock("first_game")
	summary := domain.SessionSummary{TotalQuestions: 10, Skipped: 10}
	profile.Record(summary)

	if got := tracker.Evaluate(summary, profile); len(got) != 0 {
		t.Fatalf("expected nothing new, got %v", got)
	}
}

func TestAllSkippedSessionEarnsNoSkillAchievements(t *testing.T) {
	tracker := NewTracker(Catalog())
	profile := domain.NewPlayerProfile("carol")
	summary := domain.SessionSummary{TotalQuestions: 10, Skipped: 10}
	profile.Record(summary)

	got := tracker.Evaluate(summary, profile)
	if len(got) != 1 || got[0] != "first_game" {
		t.Fatalf("expected only first_game, got %v", got)
	}
}

func TestUnlockSetIsMonotone(t *testing.T) {
	tracker := NewTracker(Catalog())
	profile := domain.NewPlayerProfile("dave")

	sessions := []domain.SessionSummary{
		{Score: 200, TotalQuestions: 10, Correct: 10, LongestStreak: 10, AverageTime: time.Second},
		{TotalQuestions: 10, Wrong: 10},
		{TotalQuestions: 10, Skipped: 10},
	}
	prev := 0
	for _, s := range sessions {
		profile.Record(s)
		profile.Unlock(tracker.Evaluate(s, profile)...)
		if len(profile.Achievements) < prev {
			t.Fatalf("unlock set shrank from %d to %d", prev, len(profile.Achievements))
		}
		prev = len(profile.Achievements)
	}
	if !profile.Achievements["perfect_round"] {
		t.Fatalf("expected perfect_round to stay unlocked")
	}
}

func TestStatusesReflectProfile(t *testing.T) {
	tracker := NewTracker(Catalog())
	profile := domain.NewPlayerProfile("erin")
	profile.Unlock("veteran")

	for _, st := range tracker.Statuses(profile) {
		if st.ID == "veteran" && !st.Unlocked {
			t.Fatalf("expected veteran unlocked")
		}
		if st.ID != "veteran" && st.Unlocked {
			t.Fatalf("unexpected unlock %s", st.ID)
		}
	}
}
