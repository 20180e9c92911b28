package app_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"quizmaster/internal/app"
	"quizmaster/internal/domain"
	"quizmaster/internal/scoring"
)

var t0 = time.Unix(1_700_000_000, 0)

func makeQuestions(n int, d domain.Difficulty) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Question{
			ID:   fmt.Sprintf("q%d", i+1),
			Text: fmt.Sprintf("Question %d?", i+1),
			Options: []domain.Option{
				{ID: "a", Text: "one"},
				{ID: "b", Text: "two"},
				{ID: "c", Text: "three"},
				{ID: "d", Text: "four"},
			},
			CorrectID:  "c",
			Category:   "General",
			Difficulty: d,
			Hint:       "Count to three",
		})
	}
	return out
}

func defaultSettings(n int) domain.Settings {
	return domain.Settings{
		Category:     "all",
		Difficulty:   "all",
		Length:       n,
		TimeLimit:    15 * time.Second,
		HintsEnabled: true,
	}
}

func startedSession(t *testing.T, settings domain.Settings, questions []domain.Question, opts ...app.SessionOption) *app.Session {
	t.Helper()
	s := app.NewSession("s1", "Ann", settings, questions, scoring.DefaultRules(), opts...)
	if err := s.Start(t0); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return s
}

func TestFastEasyAnswerScoresFifteen(t *testing.T) {
	s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy))

	out, err := s.Answer("c", t0.Add(1500*time.Millisecond))
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if !out.Correct || out.Award.Total() != 15 {
		t.Fatalf("expected 15 points, got %+v", out.Award)
	}
	if s.Score() != 15 || s.QuestionState() != app.QuestionAnswered {
		t.Fatalf("unexpected state score=%d qstate=%s", s.Score(), s.QuestionState())
	}
}

func TestAllSkippedSessionScoresZero(t *testing.T) {
	s := startedSession(t, defaultSettings(10), makeQuestions(10, domain.DifficultyHard))

	now := t0
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		if err := s.Skip(now); err != nil {
			t.Fatalf("skip %d: %v", i, err)
		}
		if err := s.Advance(now); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if s.State() != app.StateFinished {
		t.Fatalf("expected finished, got %s", s.State())
	}
	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Score != 0 || sum.LongestStreak != 0 || sum.Skipped != 10 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.Accuracy() != 0 || sum.AverageTime != 0 {
		t.Fatalf("skips must not count as attempts: %+v", sum)
	}
}

func TestInvalidAnswerKeepsState(t *testing.T) {
	s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy))

	for _, id := range []string{"", "  ", "z"} {
		if _, err := s.Answer(id, t0.Add(time.Second)); !errors.Is(err, domain.ErrInvalidAnswer) {
			t.Fatalf("answer %q: expected ErrInvalidAnswer, got %v", id, err)
		}
	}
	if s.QuestionState() != app.QuestionPresented {
		t.Fatalf("invalid answer must not transition, got %s", s.QuestionState())
	}
	if _, err := s.Answer("a", t0.Add(2*time.Second)); err != nil {
		t.Fatalf("valid answer rejected: %v", err)
	}
	if _, err := s.Answer("c", t0.Add(3*time.Second)); !errors.Is(err, domain.ErrNotPresented) {
		t.Fatalf("second answer must be rejected, got %v", err)
	}
}

func TestHintNeverRemovesCorrectOption(t *testing.T) {
	for pick := 0; pick < 3; pick++ {
		p := pick
		s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy),
			app.WithPicker(func(int) int { return p }))

		removed, err := s.Hint(t0.Add(time.Second))
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if removed.ID == "c" {
			t.Fatalf("hint removed the correct option")
		}
		_, opts, _ := s.Current()
		if len(opts) != 3 {
			t.Fatalf("expected 3 options after hint, got %d", len(opts))
		}
		for _, o := range opts {
			if o.ID == removed.ID {
				t.Fatalf("removed option still presented")
			}
		}
		if _, err := s.Answer(removed.ID, t0.Add(2*time.Second)); !errors.Is(err, domain.ErrInvalidAnswer) {
			t.Fatalf("removed option must not be answerable, got %v", err)
		}
	}
}

func TestHintOncePerQuestionAndPenalty(t *testing.T) {
	s := startedSession(t, defaultSettings(2), makeQuestions(2, domain.DifficultyMedium))

	if _, err := s.Answer("c", t0.Add(time.Second)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	before := s.Score()
	_ = s.Advance(t0.Add(2 * time.Second))

	if _, err := s.Hint(t0.Add(3 * time.Second)); err != nil {
		t.Fatalf("hint: %v", err)
	}
	if s.Score() != before-5 {
		t.Fatalf("expected penalty of 5, score %d -> %d", before, s.Score())
	}
	if _, err := s.Hint(t0.Add(4 * time.Second)); !errors.Is(err, domain.ErrHintUsed) {
		t.Fatalf("expected ErrHintUsed, got %v", err)
	}
}

func TestHintAtZeroScoreIsChargedLater(t *testing.T) {
	s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy))
	if _, err := s.Hint(t0); err != nil {
		t.Fatalf("hint: %v", err)
	}
	if s.Score() != 0 {
		t.Fatalf("score must not go negative, got %d", s.Score())
	}
	out, err := s.Answer("c", t0.Add(time.Second))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	// 10 base + 5 time bonus, minus the 5 point hint.
	if out.Award.HintPenalty != 5 || s.Score() != 10 {
		t.Fatalf("expected hint penalty settled from the answer, award %+v score %d", out.Award, s.Score())
	}
}

func TestHintRules(t *testing.T) {
	off := defaultSettings(1)
	off.HintsEnabled = false
	s := startedSession(t, off, makeQuestions(1, domain.DifficultyEasy))
	if _, err := s.Hint(t0); !errors.Is(err, domain.ErrHintsDisabled) {
		t.Fatalf("expected ErrHintsDisabled, got %v", err)
	}

	limited := defaultSettings(2)
	limited.MaxHints = 1
	s = startedSession(t, limited, makeQuestions(2, domain.DifficultyEasy))
	if _, err := s.Hint(t0); err != nil {
		t.Fatalf("first hint: %v", err)
	}
	_ = s.Skip(t0.Add(time.Second))
	_ = s.Advance(t0.Add(time.Second))
	if _, err := s.Hint(t0.Add(2 * time.Second)); !errors.Is(err, domain.ErrHintLimit) {
		t.Fatalf("expected ErrHintLimit, got %v", err)
	}
	if s.HintsLeft() != 0 {
		t.Fatalf("expected no hints left")
	}
}

func TestTimeoutScoresAsWrong(t *testing.T) {
	s := startedSession(t, defaultSettings(2), makeQuestions(2, domain.DifficultyEasy))
	if _, err := s.Answer("c", t0.Add(time.Second)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	_ = s.Advance(t0.Add(2 * time.Second))

	if s.Tick(t0.Add(10 * time.Second)) {
		t.Fatalf("timed out early")
	}
	if !s.Tick(t0.Add(17 * time.Second)) {
		t.Fatalf("expected timeout")
	}
	if s.QuestionState() != app.QuestionTimedOut || s.Streak() != 0 {
		t.Fatalf("expected timed out with reset streak, got %s streak=%d", s.QuestionState(), s.Streak())
	}
	if s.Tick(t0.Add(30 * time.Second)) {
		t.Fatalf("timeout fired twice")
	}
}

func TestStaleTickAfterAnswerIsNoop(t *testing.T) {
	s := startedSession(t, defaultSettings(2), makeQuestions(2, domain.DifficultyEasy))

	if _, err := s.Answer("c", t0.Add(14*time.Second)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if s.Tick(t0.Add(20 * time.Second)) {
		t.Fatalf("tick after answer must be a no-op")
	}
	if err := s.Advance(t0.Add(20 * time.Second)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	// The second question started at t0+20s, so the first question's deadline must not expire it.
	if s.Tick(t0.Add(30 * time.Second)) {
		t.Fatalf("earlier deadline expired the next question")
	}
	if s.QuestionState() != app.QuestionPresented {
		t.Fatalf("expected presented, got %s", s.QuestionState())
	}
}

func TestLateAnswerTimesOut(t *testing.T) {
	s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy))
	if _, err := s.Answer("c", t0.Add(16*time.Second)); !errors.Is(err, domain.ErrNotPresented) {
		t.Fatalf("expected late answer to be rejected, got %v", err)
	}
	if s.QuestionState() != app.QuestionTimedOut {
		t.Fatalf("expected timed out, got %s", s.QuestionState())
	}
}

func TestDisabledTimerNeverTimesOut(t *testing.T) {
	settings := defaultSettings(1)
	settings.TimeLimit = 0
	s := startedSession(t, settings, makeQuestions(1, domain.DifficultyHard))
	if s.Tick(t0.Add(time.Hour)) {
		t.Fatalf("disabled timer expired")
	}
	out, err := s.Answer("c", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Award.Total() != 20 {
		t.Fatalf("expected base points only, got %+v", out.Award)
	}
}

func TestAdvanceRequiresResolution(t *testing.T) {
	s := app.NewSession("s1", "", defaultSettings(1), makeQuestions(1, domain.DifficultyEasy), scoring.DefaultRules())
	if err := s.Advance(t0); !errors.Is(err, domain.ErrNotAdvanceable) {
		t.Fatalf("expected ErrNotAdvanceable before start, got %v", err)
	}
	_ = s.Start(t0)
	if err := s.Start(t0); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if err := s.Advance(t0); !errors.Is(err, domain.ErrNotAdvanceable) {
		t.Fatalf("expected ErrNotAdvanceable while presented, got %v", err)
	}
	if _, err := s.Summary(); !errors.Is(err, domain.ErrSessionNotFinished) {
		t.Fatalf("expected ErrSessionNotFinished, got %v", err)
	}
	if s.Player() != domain.AnonymousPlayer {
		t.Fatalf("expected anonymous player, got %q", s.Player())
	}
}

func TestObserverSeesTransitions(t *testing.T) {
	var kinds []app.EventKind
	s := startedSession(t, defaultSettings(1), makeQuestions(1, domain.DifficultyEasy),
		app.WithObserver(func(ev app.Event) { kinds = append(kinds, ev.Kind) }))

	_, _ = s.Hint(t0)
	_, _ = s.Answer("c", t0.Add(time.Second))
	_ = s.Advance(t0.Add(2 * time.Second))

	want := []app.EventKind{app.EventStarted, app.EventPresented, app.EventHint, app.EventAnswered, app.EventFinished}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestStreakBonusAndProgress(t *testing.T) {
	s := startedSession(t, defaultSettings(5), makeQuestions(5, domain.DifficultyEasy))
	now := t0
	for i := 0; i < 5; i++ {
		cur, total := s.Progress()
		if cur != i+1 || total != 5 {
			t.Fatalf("unexpected progress %d/%d", cur, total)
		}
		now = now.Add(20 * time.Second)
		out, err := s.Answer("c", now.Add(-8*time.Second))
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		wantStreak := 0
		if i >= 3 {
			wantStreak = 5
		}
		if out.Award.StreakBonus != wantStreak {
			t.Fatalf("answer %d: expected streak bonus %d, got %d", i, wantStreak, out.Award.StreakBonus)
		}
		_ = s.Advance(now)
	}
	sum, _ := s.Summary()
	if sum.LongestStreak != 5 || sum.Correct != 5 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
