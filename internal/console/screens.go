package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"quizmaster/internal/achievements"
	"quizmaster/internal/app"
	"quizmaster/internal/domain"
	"quizmaster/internal/i18n"
)

const rule = "----------------------------------------"

// rlm is the right-to-left mark prefixed to lines in RTL languages.
const rlm = "\u200f"

// Printer writes localized lines.
type Printer struct {
	w   io.Writer
	loc *i18n.Localizer
}

func NewPrinter(w io.Writer, loc *i18n.Localizer) *Printer {
	return &Printer{w: w, loc: loc}
}

// Line writes one localized message.
func (p *Printer) Line(key string, args ...interface{}) {
	p.Raw(p.loc.T(key, args...))
}

// Raw writes s as a line, marking it for RTL display when needed.
func (p *Printer) Raw(s string) {
	if p.loc.RTL() && s != "" {
		s = rlm + s
	}
	fmt.Fprintln(p.w, s)
}

func (p *Printer) Blank() { fmt.Fprintln(p.w) }

// Start renders the start screen.
func (p *Printer) Start(s domain.Settings) {
	timer := "off"
	if s.TimeLimit > 0 {
		timer = s.TimeLimit.String()
	}
	p.Raw(rule)
	p.Line(i18n.AppTitle)
	p.Line(i18n.Welcome)
	p.Line(i18n.Settings, s.Length, s.Category, s.Difficulty, timer)
	p.Raw("c <category> · d <easy|medium|hard|all> · n <count>")
	p.Line(i18n.PressEnter)
}

// Question renders the question screen.
func (p *Printer) Question(ev app.Event, limit time.Duration, hints bool, penalty int) {
	p.Raw(rule)
	p.Line(i18n.QuestionOf, ev.Index+1, ev.Total)
	p.Line(i18n.ScoreStreak, ev.Score, ev.Streak)
	if limit > 0 {
		p.Line(i18n.TimeLeft, int(limit/time.Second))
	}
	p.Blank()
	p.Raw(ev.Question.Text)
	p.Options(ev.Options)
	p.Blank()
	if hints {
		p.Line(i18n.Controls, penalty)
	} else {
		p.Line(i18n.ControlsNoHint)
	}
}

// Options lists options numbered from 1.
func (p *Printer) Options(opts []domain.Option) {
	for i, opt := range opts {
		p.Raw(fmt.Sprintf("  %d) %s", i+1, opt.Text))
	}
}

// Resolution renders the feedback after a question is answered, skipped or timed out.
func (p *Printer) Resolution(ev app.Event) {
	correct := ev.Question.Correct().Text
	switch ev.Kind {
	case app.EventAnswered:
		if ev.Outcome.Correct {
			a := ev.Outcome.Award
			p.Line(i18n.Correct)
			p.Line(i18n.PointsAwarded, a.Total(), a.Base, a.TimeBonus, a.StreakBonus)
		} else {
			p.Line(i18n.Wrong, correct)
		}
	case app.EventSkipped:
		p.Line(i18n.Skipped, correct)
	case app.EventTimedOut:
		p.Line(i18n.TimesUp, correct)
	}
	p.Line(i18n.NextPrompt)
}

// Results renders the results screen.
func (p *Printer) Results(res app.Result) {
	s := res.Summary
	p.Raw(rule)
	p.Line(i18n.QuizCompleted)
	p.Line(i18n.FinalScore, s.Score)
	p.Line(i18n.CorrectAnswers, s.Correct, s.TotalQuestions)
	p.Line(i18n.Accuracy, s.Accuracy())
	p.Line(i18n.AverageTime, s.AverageTime.Seconds())
	p.Line(i18n.LongestStreak, s.LongestStreak)
	for _, def := range res.Unlocked {
		p.Line(i18n.Unlocked, def.Description)
	}
}

// Leaderboard renders the high-score table.
func (p *Printer) Leaderboard(entries []domain.HighScoreEntry) {
	p.Raw(rule)
	p.Line(i18n.HighScoresTitle)
	if len(entries) == 0 {
		p.Line(i18n.NoScores)
		return
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(tw, "%d.\t%s\t%d\t%s\t%s\n", i+1, e.Player, e.Score, e.Category, e.Difficulty)
	}
	tw.Flush()
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		p.Raw(line)
	}
}

// Achievements renders every achievement with its unlock state.
func (p *Printer) Achievements(statuses []achievements.Status) {
	p.Raw(rule)
	p.Line(i18n.AchievementsTitle)
	for _, st := range statuses {
		mark := "[ ]"
		if st.Unlocked {
			mark = "[x]"
		}
		p.Raw(fmt.Sprintf("%s %-14s %s", mark, st.ID, st.Description))
	}
}

// Stats renders cumulative player statistics.
func (p *Printer) Stats(profile domain.PlayerProfile) {
	p.Raw(rule)
	p.Line(i18n.StatsTitle, profile.Player)
	p.Line(i18n.GamesPlayed, profile.GamesPlayed)
	p.Line(i18n.HighestScore, profile.HighestScore)
	p.Line(i18n.Answered, profile.QuestionsAnswered)
	p.Line(i18n.Accuracy, profile.Accuracy())
	p.Line(i18n.LongestStreak, profile.BestStreak)
}

// Categories renders the available categories and difficulty levels.
func (p *Printer) Categories(categories, difficulties []string) {
	p.Line(i18n.CategoriesTitle)
	for _, c := range categories {
		p.Raw("  " + c)
	}
	p.Line(i18n.DifficultiesTitle)
	for _, d := range difficulties {
		p.Raw("  " + d)
	}
}
