// Package console is the terminal front end. A single loop owns the quiz session and
// selects over input lines, countdown ticks and cancellation.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizmaster/internal/app"
	"quizmaster/internal/domain"
	"quizmaster/internal/i18n"
)

// errQuit ends the current game and returns to the caller.
var errQuit = errors.New("quit")

// TickerFunc starts a periodic tick source and returns its channel and a stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// UI runs games for one player on a terminal.
type UI struct {
	service *app.QuizService
	print   *Printer
	in      io.Reader
	logger  *zap.Logger
	now     func() time.Time
	ticker  TickerFunc

	lines <-chan string
}

// Option customizes a UI.
type Option func(*UI)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(u *UI) { u.now = now }
}

// WithTicker replaces the one-second ticker, for tests.
func WithTicker(fn TickerFunc) Option {
	return func(u *UI) { u.ticker = fn }
}

func New(service *app.QuizService, loc *i18n.Localizer, in io.Reader, out io.Writer, logger *zap.Logger, opts ...Option) *UI {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &UI{
		service: service,
		print:   NewPrinter(out, loc),
		in:      in,
		logger:  logger,
		now:     time.Now,
		ticker:  realTicker,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run shows the start screen and plays games until the player quits, input ends or ctx is done.
func (u *UI) Run(ctx context.Context, player string, settings domain.Settings) error {
	u.lines = readLines(u.in)
	for {
		u.print.Start(settings)
		line, err := u.next(ctx)
		if err != nil {
			return u.stop(err)
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "":
		case "q", "quit":
			return u.stop(nil)
		case "c":
			settings.Category = orAll(arg)
			continue
		case "d":
			if d, ok := parseDifficulty(arg); ok {
				settings.Difficulty = d
			} else {
				u.print.Line(i18n.InvalidDifficulty, arg)
			}
			continue
		case "n":
			if n, err := strconv.Atoi(arg); err == nil && n > 0 && n <= domain.MaxLength {
				settings.Length = n
			} else {
				u.print.Line(i18n.InvalidLength, domain.MaxLength)
			}
			continue
		default:
			continue
		}

		err = u.play(ctx, player, settings)
		switch {
		case errors.Is(err, domain.ErrEmptySet):
			u.print.Line(i18n.NoQuestions)
		case errors.Is(err, domain.ErrInvalidSettings):
			// Settings from config can still be out of range; let the player fix them here.
			u.print.Line(i18n.Error, err)
		case errors.Is(err, errQuit):
			return u.stop(nil)
		case err != nil:
			return u.stop(err)
		}
	}
}

// play runs one session to completion and shows the results.
func (u *UI) play(ctx context.Context, player string, settings domain.Settings) error {
	if err := u.service.Refresh(ctx); err != nil {
		u.logger.Warn("question reload failed, keeping loaded questions", zap.Error(err))
	}
	session, err := u.service.NewSession(player, settings)
	if err != nil {
		return err
	}
	session.Observe(u.render(session))

	if err := session.Start(u.now()); err != nil {
		return err
	}

	var ticks <-chan time.Time
	if settings.TimeLimit > 0 {
		c, stop := u.ticker(time.Second)
		defer stop()
		ticks = c
	}

	for session.State() == app.StateInProgress {
		select {
		case <-ctx.Done():
			session.Abandon(u.now())
			return ctx.Err()
		case <-ticks:
			u.tick(session)
		case line, ok := <-u.lines:
			if !ok {
				session.Abandon(u.now())
				return io.EOF
			}
			if err := u.handle(session, line); err != nil {
				session.Abandon(u.now())
				return err
			}
		}
	}
	return u.results(ctx, session)
}

// tick polls the countdown and warns during the last seconds.
func (u *UI) tick(session *app.Session) {
	now := u.now()
	if session.Tick(now) || session.QuestionState() != app.QuestionPresented {
		return
	}
	left := int(session.Remaining(now) / time.Second)
	if left > 0 && left <= 5 {
		u.print.Line(i18n.TimeLeft, left)
	}
}

// handle applies one line of input to the session.
func (u *UI) handle(session *app.Session, line string) error {
	now := u.now()
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd == "q" || cmd == "quit" {
		return errQuit
	}

	if session.QuestionState() != app.QuestionPresented {
		// Any input moves past the feedback screen.
		return session.Advance(now)
	}

	switch cmd {
	case "h", "hint":
		u.hint(session, now)
		return nil
	case "s", "skip":
		if err := session.Skip(now); err != nil && !errors.Is(err, domain.ErrNotPresented) {
			return err
		}
		return nil
	}

	_, opts, _ := session.Current()
	id, ok := optionFor(cmd, opts)
	if !ok {
		u.print.Line(i18n.InvalidAnswer)
		return nil
	}
	_, err := session.Answer(id, now)
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		u.print.Line(i18n.InvalidAnswer)
	case errors.Is(err, domain.ErrNotPresented):
		// The deadline passed first; the timeout has already been shown.
	case err != nil:
		return err
	}
	return nil
}

func (u *UI) hint(session *app.Session, now time.Time) {
	q, _, ok := session.Current()
	if !ok {
		return
	}
	if _, err := session.Hint(now); err != nil {
		u.print.Line(i18n.Error, err)
		return
	}
	if q.Hint != "" {
		u.print.Line(i18n.HintText, q.Hint)
	}
}

// results finishes the session, shows statistics and records a qualifying score.
func (u *UI) results(ctx context.Context, session *app.Session) error {
	res, err := u.service.Finish(ctx, session)
	if err != nil {
		return err
	}
	u.print.Results(res)

	if res.HighScore {
		u.print.Line(i18n.NewHighScore)
		u.print.Line(i18n.EnterName)
		name, err := u.next(ctx)
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			name = session.Player()
		}
		if _, err := u.service.RecordHighScore(ctx, name, res.Summary); err != nil {
			u.logger.Warn("high score not recorded", zap.Error(err))
		} else {
			u.print.Line(i18n.ScoreSaved)
		}
	}
	u.print.Leaderboard(u.service.Leaderboard(ctx, 0))
	return nil
}

// render draws every session transition.
func (u *UI) render(session *app.Session) app.Observer {
	return func(ev app.Event) {
		settings := session.Settings()
		switch ev.Kind {
		case app.EventPresented:
			u.print.Question(ev, settings.TimeLimit, settings.HintsEnabled, u.service.Rules().HintPenalty)
		case app.EventHint:
			u.print.Line(i18n.HintRemoved, ev.Removed.Text, ev.Penalty)
			u.print.Options(ev.Options)
		case app.EventAnswered, app.EventSkipped, app.EventTimedOut:
			u.print.Resolution(ev)
		}
	}
}

func (u *UI) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-u.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (u *UI) stop(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		u.print.Line(i18n.Goodbye)
		return nil
	}
	return err
}

// optionFor maps "1"-"4" or "a"-"d" to the option shown at that position.
func optionFor(input string, opts []domain.Option) (string, bool) {
	idx := -1
	if n, err := strconv.Atoi(input); err == nil {
		idx = n - 1
	} else if len(input) == 1 && input[0] >= 'a' && input[0] <= 'z' {
		idx = int(input[0] - 'a')
	}
	if idx < 0 || idx >= len(opts) {
		return "", false
	}
	return opts[idx].ID, true
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func orAll(v string) string {
	if v == "" {
		return domain.AnyValue
	}
	return v
}

// parseDifficulty accepts a level name, "all" or nothing (meaning all).
func parseDifficulty(v string) (string, bool) {
	if v == "" || strings.EqualFold(v, domain.AnyValue) {
		return domain.AnyValue, true
	}
	d, ok := domain.ParseDifficulty(v)
	return string(d), ok
}

// readLines feeds stdin lines into a channel that closes at end of input.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
