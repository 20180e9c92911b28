package domain

import (
	"strings"
	"time"
)

// Difficulty is the weighting class of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AnyValue is the wildcard accepted by category and difficulty filters.
const AnyValue = "all"

// ParseDifficulty normalizes user input ("Easy", " hard ") into a Difficulty.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// Option is one of the four answers offered for a question.
type Option struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID         string     `json:"id" validate:"required"`
	Text       string     `json:"question" validate:"required"`
	Options    []Option   `json:"options" validate:"len=4,dive"`
	CorrectID  string     `json:"correctId" validate:"required"`
	Category   string     `json:"category" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=easy medium hard"`
	Hint       string     `json:"hint,omitempty"`
}

// Correct returns the correct option.
func (q Question) Correct() Option {
	for _, opt := range q.Options {
		if opt.ID == q.CorrectID {
			return opt
		}
	}
	return Option{}
}

// Option looks up an option by id.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Filter selects questions by category and difficulty. Empty or "all" matches everything.
type Filter struct {
	Category   string
	Difficulty string
}

// Matches reports whether q passes the filter.
func (f Filter) Matches(q Question) bool {
	if !isAny(f.Difficulty) && !strings.EqualFold(string(q.Difficulty), f.Difficulty) {
		return false
	}
	if !isAny(f.Category) && !strings.EqualFold(q.Category, f.Category) {
		return false
	}
	return true
}

func isAny(v string) bool {
	return v == "" || strings.EqualFold(v, AnyValue)
}

// Settings are the player's choices for one quiz session.
type Settings struct {
	Category     string        `validate:"required"`
	Difficulty   string        `validate:"required,oneof=all easy medium hard"`
	Length       int           `validate:"min=1,max=100"` // max is MaxLength
	TimeLimit    time.Duration `validate:"min=0"`
	HintsEnabled bool
	MaxHints     int `validate:"min=0"` // 0 means no per-session limit
}

// MaxLength is the largest number of questions one session may ask.
const MaxLength = 100

// Filter returns the question filter implied by the settings.
func (s Settings) Filter() Filter {
	return Filter{Category: s.Category, Difficulty: s.Difficulty}
}

// SessionSummary is the fixed statistics record produced when a session finishes.
type SessionSummary struct {
	SessionID      string        `json:"sessionId"`
	Player         string        `json:"player"`
	Score          int           `json:"score"`
	TotalQuestions int           `json:"totalQuestions"`
	Correct        int           `json:"correct"`
	Wrong          int           `json:"wrong"`
	Skipped        int           `json:"skipped"`
	TimedOut       int           `json:"timedOut"`
	HintsUsed      int           `json:"hintsUsed"`
	LongestStreak  int           `json:"longestStreak"`
	AverageTime    time.Duration `json:"averageTime"`
	Category       string        `json:"category"`
	Difficulty     string        `json:"difficulty"`
	FinishedAt     time.Time     `json:"finishedAt"`
}

// Attempted counts questions the player answered or let time out on. Skips are excluded.
func (s SessionSummary) Attempted() int {
	return s.Correct + s.Wrong + s.TimedOut
}

// Accuracy is the percentage of attempted questions answered correctly.
func (s SessionSummary) Accuracy() float64 {
	attempted := s.Attempted()
	if attempted == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(attempted)
}

// HighScoreEntry is one record of the high-score log.
type HighScoreEntry struct {
	ID         string    `json:"id"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// PlayerProfile holds cumulative statistics and unlocked achievements for one player.
type PlayerProfile struct {
	Player            string          `json:"player"`
	GamesPlayed       int             `json:"gamesPlayed"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	CorrectAnswers    int             `json:"correctAnswers"`
	HighestScore      int             `json:"highestScore"`
	BestStreak        int             `json:"bestStreak"`
	Achievements      map[string]bool `json:"achievements"`
}

// NewPlayerProfile returns an empty profile for player.
func NewPlayerProfile(player string) PlayerProfile {
	return PlayerProfile{Player: player, Achievements: make(map[string]bool)}
}

// Accuracy is the lifetime percentage of correct answers.
func (p PlayerProfile) Accuracy() float64 {
	if p.QuestionsAnswered == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) * 100 / float64(p.QuestionsAnswered)
}

// Record folds a finished session into the cumulative statistics.
func (p *PlayerProfile) Record(s SessionSummary) {
	p.GamesPlayed++
	p.QuestionsAnswered += s.Attempted()
	p.CorrectAnswers += s.Correct
	if s.Score > p.HighestScore {
		p.HighestScore = s.Score
	}
	if s.LongestStreak > p.BestStreak {
		p.BestStreak = s.LongestStreak
	}
}

// Unlock marks achievement ids as unlocked. Unlocks are never revoked.
func (p *PlayerProfile) Unlock(ids ...string) {
	if p.Achievements == nil {
		p.Achievements = make(map[string]bool)
	}
	for _, id := range ids {
		p.Achievements[id] = true
	}
}

// AnonymousPlayer replaces empty player names.
const AnonymousPlayer = "Anonymous"

// PlayerName trims name and falls back to AnonymousPlayer.
func PlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousPlayer
	}
	return name
}
