package app

import (
	"strings"
	"time"

	"quizmaster/internal/domain"
	"quizmaster/internal/scoring"
	"quizmaster/internal/timer"
)

// State is the lifecycle state of a session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// QuestionState is the sub-state of the current question while a session is in progress.
type QuestionState int

const (
	QuestionNone QuestionState = iota
	QuestionPresented
	QuestionAnswered
	QuestionSkipped
	QuestionTimedOut
)

func (s QuestionState) String() string {
	switch s {
	case QuestionPresented:
		return "presented"
	case QuestionAnswered:
		return "answered"
	case QuestionSkipped:
		return "skipped"
	case QuestionTimedOut:
		return "timed_out"
	}
	return "none"
}

// resolved reports whether the question accepts Advance.
func (s QuestionState) resolved() bool {
	return s == QuestionAnswered || s == QuestionSkipped || s == QuestionTimedOut
}

// EventKind tags a session transition.
type EventKind int

const (
	EventStarted EventKind = iota
	EventPresented
	EventAnswered
	EventHint
	EventSkipped
	EventTimedOut
	EventFinished
)

// Event describes one transition. Fields not relevant to Kind are zero.
type Event struct {
	Kind     EventKind
	Index    int
	Total    int
	Question domain.Question
	Options  []domain.Option
	Outcome  Outcome
	Removed  domain.Option
	Penalty  int
	Score    int
	Streak   int
}

// Observer receives every session transition.
type Observer func(Event)

// Outcome is the resolution of one question.
type Outcome struct {
	Selected  string
	CorrectID string
	Correct   bool
	Award     scoring.Award
	Elapsed   time.Duration
}

// Session is one run over a pre-sampled question queue. It is driven from a single
// goroutine and is not safe for concurrent use.
type Session struct {
	id        string
	player    string
	settings  domain.Settings
	questions []domain.Question

	state     State
	index     int
	qstate    QuestionState
	presented []domain.Option
	hinted    bool
	outcome   Outcome

	keeper    *scoring.Keeper
	countdown *timer.Countdown
	token     timer.Token
	answered  time.Duration

	shuffle    func([]domain.Option) []domain.Option
	pick       func(n int) int
	observers  []Observer
	finishedAt time.Time
}

// SessionOption customizes a session.
type SessionOption func(*Session)

// WithShuffle sets how options are reordered when a question is presented.
func WithShuffle(fn func([]domain.Option) []domain.Option) SessionOption {
	return func(s *Session) { s.shuffle = fn }
}

// WithPicker sets how a hint chooses which incorrect option to remove.
func WithPicker(fn func(n int) int) SessionOption {
	return func(s *Session) { s.pick = fn }
}

// WithObserver registers fn for every transition.
func WithObserver(fn Observer) SessionOption {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// NewSession builds a session over questions. Start must be called before play.
func NewSession(id, player string, settings domain.Settings, questions []domain.Question, rules scoring.Rules, opts ...SessionOption) *Session {
	s := &Session{
		id:        id,
		player:    domain.PlayerName(player),
		settings:  settings,
		questions: append([]domain.Question(nil), questions...),
		keeper:    scoring.NewKeeper(rules),
		countdown: timer.New(settings.TimeLimit),
		shuffle:   func(o []domain.Option) []domain.Option { return append([]domain.Option(nil), o...) },
		pick:      func(int) int { return 0 },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers an additional observer.
func (s *Session) Observe(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Player() string               { return s.player }
func (s *Session) Settings() domain.Settings    { return s.settings }
func (s *Session) State() State                 { return s.state }
func (s *Session) QuestionState() QuestionState { return s.qstate }
func (s *Session) Score() int                   { return s.keeper.Total() }
func (s *Session) Streak() int                  { return s.keeper.Streak() }
func (s *Session) Keeper() *scoring.Keeper      { return s.keeper }
func (s *Session) LastOutcome() Outcome         { return s.outcome }
func (s *Session) HintUsed() bool               { return s.hinted }
func (s *Session) Total() int                   { return len(s.questions) }

// Remaining is the countdown time left, rounded up to whole seconds.
func (s *Session) Remaining(now time.Time) time.Duration { return s.countdown.Remaining(now) }

// Progress returns the 1-based position of the current question and the queue length.
func (s *Session) Progress() (current, total int) {
	if s.state == StateNotStarted {
		return 0, len(s.questions)
	}
	if s.state == StateFinished {
		return len(s.questions), len(s.questions)
	}
	return s.index + 1, len(s.questions)
}

// Current returns the current question and its presented options.
func (s *Session) Current() (domain.Question, []domain.Option, bool) {
	if s.state != StateInProgress {
		return domain.Question{}, nil, false
	}
	return s.questions[s.index], append([]domain.Option(nil), s.presented...), true
}

// HintsLeft returns how many hints remain, or -1 when unlimited.
func (s *Session) HintsLeft() int {
	if !s.settings.HintsEnabled {
		return 0
	}
	if s.settings.MaxHints <= 0 {
		return -1
	}
	left := s.settings.MaxHints - s.keeper.HintsUsed()
	if left < 0 {
		return 0
	}
	return left
}

// Start presents the first question. An empty queue finishes immediately.
func (s *Session) Start(now time.Time) error {
	if s.state != StateNotStarted {
		return domain.ErrAlreadyStarted
	}
	s.state = StateInProgress
	s.emit(Event{Kind: EventStarted, Total: len(s.questions)})
	if len(s.questions) == 0 {
		s.finish(now)
		return nil
	}
	s.present(0, now)
	return nil
}

// Answer resolves the presented question with optionID. An answer arriving after the
// deadline times the question out instead.
func (s *Session) Answer(optionID string, now time.Time) (Outcome, error) {
	if err := s.requirePresented(now); err != nil {
		return Outcome{}, err
	}
	optionID = strings.TrimSpace(optionID)
	if optionID == "" || !s.isPresented(optionID) {
		return Outcome{}, domain.ErrInvalidAnswer
	}

	q := s.questions[s.index]
	elapsed := s.countdown.Elapsed(now)
	s.countdown.Cancel()

	out := Outcome{Selected: optionID, CorrectID: q.CorrectID, Correct: optionID == q.CorrectID, Elapsed: elapsed}
	if out.Correct {
		out.Award = s.keeper.Correct(q.Difficulty, elapsed, s.settings.TimeLimit)
	} else {
		s.keeper.Wrong()
	}
	s.record(elapsed)
	s.resolve(QuestionAnswered, out)
	s.emit(s.event(EventAnswered))
	return out, nil
}

// Hint removes one incorrect option from the presented set and applies the penalty.
func (s *Session) Hint(now time.Time) (domain.Option, error) {
	if err := s.requirePresented(now); err != nil {
		return domain.Option{}, err
	}
	if !s.settings.HintsEnabled {
		return domain.Option{}, domain.ErrHintsDisabled
	}
	if s.hinted {
		return domain.Option{}, domain.ErrHintUsed
	}
	if s.HintsLeft() == 0 {
		return domain.Option{}, domain.ErrHintLimit
	}

	correct := s.questions[s.index].CorrectID
	var wrong []int
	for i, opt := range s.presented {
		if opt.ID != correct {
			wrong = append(wrong, i)
		}
	}
	if len(wrong) == 0 {
		return domain.Option{}, domain.ErrHintUsed
	}
	victim := wrong[s.pick(len(wrong))%len(wrong)]
	removed := s.presented[victim]
	s.presented = append(s.presented[:victim:victim], s.presented[victim+1:]...)
	s.hinted = true

	ev := s.event(EventHint)
	ev.Removed = removed
	ev.Penalty = s.keeper.Hint()
	ev.Score = s.keeper.Total()
	s.emit(ev)
	return removed, nil
}

// Skip resolves the presented question with zero points.
func (s *Session) Skip(now time.Time) error {
	if err := s.requirePresented(now); err != nil {
		return err
	}
	s.countdown.Cancel()
	s.keeper.Skip()
	s.resolve(QuestionSkipped, Outcome{CorrectID: s.questions[s.index].CorrectID})
	s.emit(s.event(EventSkipped))
	return nil
}

// Tick polls the countdown. It reports whether the presented question timed out.
// Ticks in any other state, or for an earlier question, do nothing.
func (s *Session) Tick(now time.Time) bool {
	if s.state != StateInProgress || s.qstate != QuestionPresented {
		return false
	}
	if !s.countdown.Poll(s.token, now) {
		return false
	}
	s.keeper.Timeout()
	s.record(s.settings.TimeLimit)
	s.resolve(QuestionTimedOut, Outcome{CorrectID: s.questions[s.index].CorrectID, Elapsed: s.settings.TimeLimit})
	s.emit(s.event(EventTimedOut))
	return true
}

// Advance moves from a resolved question to the next one, or finishes the session.
func (s *Session) Advance(now time.Time) error {
	if s.state != StateInProgress || !s.qstate.resolved() {
		return domain.ErrNotAdvanceable
	}
	if s.index+1 >= len(s.questions) {
		s.finish(now)
		return nil
	}
	s.present(s.index+1, now)
	return nil
}

// Abandon ends the session early. Unplayed questions are left out of the summary.
func (s *Session) Abandon(now time.Time) {
	if s.state == StateFinished {
		return
	}
	s.finish(now)
}

// Summary returns the statistics of a finished session.
func (s *Session) Summary() (domain.SessionSummary, error) {
	if s.state != StateFinished {
		return domain.SessionSummary{}, domain.ErrSessionNotFinished
	}
	k := s.keeper
	sum := domain.SessionSummary{
		SessionID:      s.id,
		Player:         s.player,
		Score:          k.Total(),
		TotalQuestions: len(s.questions),
		Correct:        k.CorrectCount(),
		Wrong:          k.WrongCount(),
		Skipped:        k.SkippedCount(),
		TimedOut:       k.TimedOutCount(),
		HintsUsed:      k.HintsUsed(),
		LongestStreak:  k.LongestStreak(),
		Category:       s.settings.Category,
		Difficulty:     s.settings.Difficulty,
		FinishedAt:     s.finishedAt,
	}
	if n := sum.Attempted(); n > 0 {
		sum.AverageTime = s.answered / time.Duration(n)
	}
	return sum, nil
}

func (s *Session) requirePresented(now time.Time) error {
	if s.state != StateInProgress || s.qstate != QuestionPresented {
		return domain.ErrNotPresented
	}
	if s.Tick(now) {
		return domain.ErrNotPresented
	}
	return nil
}

func (s *Session) isPresented(id string) bool {
	for _, opt := range s.presented {
		if opt.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) present(i int, now time.Time) {
	s.index = i
	s.qstate = QuestionPresented
	s.presented = s.shuffle(s.questions[i].Options)
	s.hinted = false
	s.outcome = Outcome{}
	s.token = s.countdown.Start(now)
	s.emit(s.event(EventPresented))
}

func (s *Session) resolve(state QuestionState, out Outcome) {
	s.qstate = state
	s.outcome = out
}

func (s *Session) record(elapsed time.Duration) {
	s.answered += elapsed
}

func (s *Session) finish(now time.Time) {
	s.countdown.Cancel()
	s.state = StateFinished
	s.qstate = QuestionNone
	s.presented = nil
	s.finishedAt = now
	s.emit(Event{Kind: EventFinished, Total: len(s.questions), Score: s.keeper.Total(), Streak: s.keeper.Streak()})
}

func (s *Session) event(kind EventKind) Event {
	return Event{
		Kind:     kind,
		Index:    s.index,
		Total:    len(s.questions),
		Question: s.questions[s.index],
		Options:  append([]domain.Option(nil), s.presented...),
		Outcome:  s.outcome,
		Score:    s.keeper.Total(),
		Streak:   s.keeper.Streak(),
	}
}

func (s *Session) emit(ev Event) {
	for _, fn := range s.observers {
		fn(ev)
	}
}
