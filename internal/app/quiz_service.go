package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizmaster/internal/achievements"
	"quizmaster/internal/bank"
	"quizmaster/internal/domain"
	"quizmaster/internal/scoring"
)

// ScoreStore abstracts the high-score log (file, Redis, in-memory).
type ScoreStore interface {
	Append(ctx context.Context, entry domain.HighScoreEntry) error
	Top(ctx context.Context, limit int) ([]domain.HighScoreEntry, error)
}

// ProfileStore abstracts where cumulative player statistics and unlocked achievements live.
// LoadProfile returns an empty profile for unknown players.
type ProfileStore interface {
	LoadProfile(ctx context.Context, player string) (domain.PlayerProfile, error)
	SaveProfile(ctx context.Context, profile domain.PlayerProfile) error
	Players(ctx context.Context) ([]domain.PlayerProfile, error)
}

// Result is what a finished session produced.
type Result struct {
	Summary   domain.SessionSummary
	Profile   domain.PlayerProfile
	Unlocked  []achievements.Definition
	HighScore bool
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	// questions is swapped by Refresh and read under mu.
	questions *bank.Bank
	scores    ScoreStore
	profiles  ProfileStore
	tracker   *achievements.Tracker
	rules     scoring.Rules
	topN      int
	logger    *zap.Logger
	now       func() time.Time
	validate  *validator.Validate
	shuffle   func([]domain.Option) []domain.Option
	source    bank.Loader

	mu       sync.Mutex
	rnd      *rand.Rand
	recorded map[string]bool
	finished map[string]bool
}

// ServiceOption customizes a QuizService.
type ServiceOption func(*QuizService)

func WithRules(rules scoring.Rules) ServiceOption {
	return func(s *QuizService) { s.rules = rules }
}

func WithTracker(t *achievements.Tracker) ServiceOption {
	return func(s *QuizService) { s.tracker = t }
}

func WithTopN(n int) ServiceOption {
	return func(s *QuizService) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *QuizService) { s.now = now }
}

// WithOptionOrder replaces the option shuffle applied when a question is presented.
func WithOptionOrder(fn func([]domain.Option) []domain.Option) ServiceOption {
	return func(s *QuizService) { s.shuffle = fn }
}

// WithSource lets Refresh reload the bank from loader between games.
func WithSource(loader bank.Loader) ServiceOption {
	return func(s *QuizService) { s.source = loader }
}

// WithRandom makes hint choices deterministic.
func WithRandom(rnd *rand.Rand) ServiceOption {
	return func(s *QuizService) { s.rnd = rnd }
}

func NewQuizService(questions *bank.Bank, scores ScoreStore, profiles ProfileStore, logger *zap.Logger, opts ...ServiceOption) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &QuizService{
		questions: questions,
		scores:    scores,
		profiles:  profiles,
		tracker:   achievements.NewTracker(achievements.Catalog()),
		rules:     scoring.DefaultRules(),
		topN:      domain.DefaultTopN,
		logger:    logger,
		now:       time.Now,
		validate:  validator.New(),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		recorded:  make(map[string]bool),
		finished:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bank exposes the loaded questions for listings.
func (s *QuizService) Bank() *bank.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions
}

// Refresh reloads the bank from the source set with WithSource. Without a source it does nothing.
// On failure the current bank stays in use.
func (s *QuizService) Refresh(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	b, err := bank.Load(ctx, s.source)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.questions = b
	s.mu.Unlock()
	return nil
}

// Tracker exposes the achievement definitions.
func (s *QuizService) Tracker() *achievements.Tracker { return s.tracker }

// Rules are the scoring rules new sessions use.
func (s *QuizService) Rules() scoring.Rules { return s.rules }

// TopN is the configured leaderboard length.
func (s *QuizService) TopN() int { return s.topN }

// NewSession samples questions for settings and returns an unstarted session.
// A filter with no matches returns domain.ErrEmptySet.
func (s *QuizService) NewSession(player string, settings domain.Settings, observers ...Observer) (*Session, error) {
	if err := s.validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	b := s.Bank()
	questions, err := b.Sample(settings.Filter(), settings.Length)
	if err != nil {
		return nil, err
	}

	shuffle := s.shuffle
	if shuffle == nil {
		shuffle = b.Shuffle
	}
	opts := []SessionOption{
		WithShuffle(shuffle),
		WithPicker(s.intn),
	}
	for _, fn := range observers {
		opts = append(opts, WithObserver(fn))
	}
	session := NewSession(uuid.NewString(), player, settings, questions, s.rules, opts...)
	s.logger.Debug("session created",
		zap.String("session", session.ID()),
		zap.String("player", session.Player()),
		zap.Int("questions", len(questions)),
	)
	return session, nil
}

// Finish folds a finished session into the player's profile and evaluates achievements.
// Store failures are logged and never returned: gameplay is not blocked on persistence.
// A session is folded in once; later calls return domain.ErrAlreadyFinished.
func (s *QuizService) Finish(ctx context.Context, session *Session) (Result, error) {
	summary, err := session.Summary()
	if err != nil {
		return Result{}, err
	}
	s.mu.Lock()
	done := s.finished[summary.SessionID]
	s.finished[summary.SessionID] = true
	s.mu.Unlock()
	if done {
		return Result{}, domain.ErrAlreadyFinished
	}

	// Fresh read right before the write.
	profile, err := s.profiles.LoadProfile(ctx, summary.Player)
	if err != nil {
		s.logger.Warn("profile unreadable, starting fresh", zap.String("player", summary.Player), zap.Error(err))
		profile = domain.NewPlayerProfile(summary.Player)
	}
	if profile.Player == "" {
		profile.Player = summary.Player
	}
	profile.Record(summary)
	ids := s.tracker.Evaluate(summary, profile)
	profile.Unlock(ids...)

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("failed to save profile", zap.String("player", profile.Player), zap.Error(err))
	}

	res := Result{
		Summary:   summary,
		Profile:   profile,
		Unlocked:  s.definitions(ids),
		HighScore: s.Qualifies(ctx, summary.Score),
	}
	s.logger.Info("session finished",
		zap.String("session", summary.SessionID),
		zap.String("player", summary.Player),
		zap.Int("score", summary.Score),
		zap.Strings("unlocked", ids),
	)
	return res, nil
}

// Qualifies reports whether score would enter the current top-N.
func (s *QuizService) Qualifies(ctx context.Context, score int) bool {
	return domain.QualifiesForTop(score, s.Leaderboard(ctx, s.topN), s.topN)
}

// RecordHighScore appends the session's score under name. Each session is recorded at most once.
func (s *QuizService) RecordHighScore(ctx context.Context, name string, summary domain.SessionSummary) (domain.HighScoreEntry, error) {
	s.mu.Lock()
	done := s.recorded[summary.SessionID]
	s.mu.Unlock()
	if done {
		return domain.HighScoreEntry{}, domain.ErrAlreadyRecorded
	}
	if !s.Qualifies(ctx, summary.Score) {
		return domain.HighScoreEntry{}, domain.ErrNotHighScore
	}

	entry := domain.HighScoreEntry{
		ID:         uuid.NewString(),
		Player:     domain.PlayerName(name),
		Score:      summary.Score,
		Category:   summary.Category,
		Difficulty: summary.Difficulty,
		RecordedAt: s.now().UTC(),
	}
	if err := s.scores.Append(ctx, entry); err != nil {
		return domain.HighScoreEntry{}, err
	}

	s.mu.Lock()
	s.recorded[summary.SessionID] = true
	s.mu.Unlock()
	s.logger.Info("high score recorded", zap.String("player", entry.Player), zap.Int("score", entry.Score))
	return entry, nil
}

// Leaderboard returns up to limit entries, best first. An unreadable store reads as empty.
func (s *QuizService) Leaderboard(ctx context.Context, limit int) []domain.HighScoreEntry {
	if limit <= 0 {
		limit = s.topN
	}
	entries, err := s.scores.Top(ctx, limit)
	if err != nil {
		s.logger.Warn("high scores unreadable, treating as empty", zap.Error(err))
		return nil
	}
	return domain.RankHighScores(entries, limit)
}

// Profile returns the stored profile for player, or an empty one.
func (s *QuizService) Profile(ctx context.Context, player string) domain.PlayerProfile {
	player = domain.PlayerName(player)
	profile, err := s.profiles.LoadProfile(ctx, player)
	if err != nil {
		s.logger.Warn("profile unreadable, treating as empty", zap.String("player", player), zap.Error(err))
		return domain.NewPlayerProfile(player)
	}
	return profile
}

// Players returns every stored profile. An unreadable store reads as empty.
func (s *QuizService) Players(ctx context.Context) []domain.PlayerProfile {
	players, err := s.profiles.Players(ctx)
	if err != nil {
		s.logger.Warn("profiles unreadable, treating as empty", zap.Error(err))
		return nil
	}
	return players
}

// Achievements lists every achievement with the player's unlock state.
func (s *QuizService) Achievements(ctx context.Context, player string) []achievements.Status {
	return s.tracker.Statuses(s.Profile(ctx, player))
}

func (s *QuizService) definitions(ids []string) []achievements.Definition {
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[string]achievements.Definition)
	for _, def := range s.tracker.Definitions() {
		byID[def.ID] = def
	}
	out := make([]achievements.Definition, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}

func (s *QuizService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
