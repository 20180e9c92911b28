package console

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"quizmaster/internal/app"
	"quizmaster/internal/bank"
	"quizmaster/internal/domain"
	"quizmaster/internal/i18n"
	"quizmaster/internal/infra/memory"
)

var t0 = time.Unix(1_700_000_000, 0)

func testQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Question{
			ID:   fmt.Sprintf("q%d", i),
			Text: fmt.Sprintf("Question %d?", i),
			Options: []domain.Option{
				{ID: "a", Text: "alpha"},
				{ID: "b", Text: "beta"},
				{ID: "c", Text: "gamma"},
				{ID: "d", Text: "delta"},
			},
			CorrectID:  "b",
			Category:   "Greek",
			Difficulty: domain.DifficultyEasy,
			Hint:       "Second letter",
		})
	}
	return out
}

type fixture struct {
	service  *app.QuizService
	scores   *memory.ScoreStore
	profiles *memory.ProfileStore
	out      *bytes.Buffer
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := bank.New(testQuestions(3))
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	f := &fixture{
		scores:   memory.NewScoreStore(),
		profiles: memory.NewProfileStore(),
		out:      &bytes.Buffer{},
		clock:    t0,
	}
	// Keep options in document order so "2" is always the correct answer.
	inOrder := func(o []domain.Option) []domain.Option { return append([]domain.Option(nil), o...) }
	f.service = app.NewQuizService(b, f.scores, f.profiles, nil, app.WithOptionOrder(inOrder))
	return f
}

func (f *fixture) ui(input string) *UI {
	return New(f.service, i18n.New("en"), strings.NewReader(input), f.out, nil,
		WithClock(func() time.Time { return f.clock }),
		WithTicker(func(time.Duration) (<-chan time.Time, func()) { return nil, func() {} }),
	)
}

func settings(n int) domain.Settings {
	return domain.Settings{Category: "all", Difficulty: "all", Length: n, TimeLimit: 15 * time.Second, HintsEnabled: true}
}

func TestRunPlaysGameAndRecordsScore(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("\n" + answerAll(3, "2") + "Zed\nq\n")

	if err := ui.Run(context.Background(), "Ann", settings(3)); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := f.out.String()
	for _, want := range []string{"Question 1 of 3", "Correct!", "Quiz Completed!", "New High Score!", "Score saved.", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	top, _ := f.scores.Top(context.Background(), 5)
	if len(top) != 1 || top[0].Player != "Zed" || top[0].Score == 0 {
		t.Fatalf("unexpected high scores %+v", top)
	}
	profile, _ := f.profiles.LoadProfile(context.Background(), "Ann")
	if profile.GamesPlayed != 1 || profile.CorrectAnswers != 3 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestRunEmptyFilterReturnsToStart(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("c History\n\nq\n")

	if err := ui.Run(context.Background(), "Ann", settings(3)); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "No questions available") {
		t.Fatalf("expected empty-set message:\n%s", out)
	}
	if strings.Count(out, "Quiz Master") < 3 {
		t.Fatalf("expected the start screen to be shown again:\n%s", out)
	}
}

func TestRunRejectsBadStartSelections(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("d expert\nn 500\nn x\nd Easy\nn 2\n\nq\n")

	if err := ui.Run(context.Background(), "Ann", settings(3)); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := f.out.String()
	for _, want := range []string{
		`Unknown difficulty "expert"`,
		"Number of questions must be between 1 and 100.",
		"2 questions · category: all · difficulty: easy",
		"Question 1 of 2",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRecoversFromInvalidConfiguredSettings(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("\nn 1\n\nq\n")

	if err := ui.Run(context.Background(), "Ann", settings(500)); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "invalid quiz settings") {
		t.Fatalf("expected settings error:\n%s", out)
	}
	if !strings.Contains(out, "Question 1 of 1") {
		t.Fatalf("expected a game after fixing the length:\n%s", out)
	}
}

func TestHandleInvalidInputAndSkip(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("")
	session, err := f.service.NewSession("Ann", settings(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	session.Observe(ui.render(session))
	_ = session.Start(f.clock)

	if err := ui.handle(session, "9"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(f.out.String(), "Please choose one of the listed options.") {
		t.Fatalf("expected re-prompt, got:\n%s", f.out.String())
	}
	if session.QuestionState() != app.QuestionPresented {
		t.Fatalf("invalid input must not transition")
	}

	if err := ui.handle(session, "s"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if session.QuestionState() != app.QuestionSkipped {
		t.Fatalf("expected skipped, got %s", session.QuestionState())
	}
	if err := ui.handle(session, ""); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if session.State() != app.StateFinished {
		t.Fatalf("expected finished session")
	}
}

func TestTickTimesOutAndHintShowsText(t *testing.T) {
	f := newFixture(t)
	ui := f.ui("")
	session, _ := f.service.NewSession("Ann", settings(1))
	session.Observe(ui.render(session))
	_ = session.Start(f.clock)

	if err := ui.handle(session, "h"); err != nil {
		t.Fatalf("hint: %v", err)
	}
	if !strings.Contains(f.out.String(), "Hint: Second letter") {
		t.Fatalf("expected hint text:\n%s", f.out.String())
	}

	f.clock = t0.Add(12 * time.Second)
	ui.tick(session)
	if !strings.Contains(f.out.String(), "3 seconds remaining") {
		t.Fatalf("expected countdown warning:\n%s", f.out.String())
	}

	f.clock = t0.Add(16 * time.Second)
	ui.tick(session)
	if session.QuestionState() != app.QuestionTimedOut {
		t.Fatalf("expected timeout, got %s", session.QuestionState())
	}
	if !strings.Contains(f.out.String(), "Time's up!") {
		t.Fatalf("expected timeout message:\n%s", f.out.String())
	}
}

func TestOptionFor(t *testing.T) {
	opts := []domain.Option{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	cases := map[string]string{"1": "x", "3": "z", "b": "y"}
	for in, want := range cases {
		got, ok := optionFor(in, opts)
		if !ok || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, ok)
		}
	}
	for _, in := range []string{"0", "4", "d", "", "-1"} {
		if _, ok := optionFor(in, opts); ok {
			t.Fatalf("%q should be rejected", in)
		}
	}
}

func TestArabicOutputIsMarkedRTL(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, i18n.New("ar"))
	p.Line(i18n.AppTitle)
	if !strings.HasPrefix(out.String(), rlm) {
		t.Fatalf("expected rtl mark, got %q", out.String())
	}
}

// answerAll builds input that answers n questions with choice and advances after each.
func answerAll(n int, choice string) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(choice + "\n\n")
	}
	return b.String()
}
