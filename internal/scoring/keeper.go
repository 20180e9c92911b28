// Package scoring turns quiz events into points and streaks.
package scoring

import (
	"time"

	"quizmaster/internal/domain"
)

// Rules holds the scoring constants. DefaultRules matches the shipped game.
type Rules struct {
	BasePoints      map[domain.Difficulty]int
	TimeBonusCap    int
	StreakThreshold int
	StreakBonus     int
	HintPenalty     int
}

// DefaultRules returns the standard point table.
func DefaultRules() Rules {
	return Rules{
		BasePoints: map[domain.Difficulty]int{
			domain.DifficultyEasy:   10,
			domain.DifficultyMedium: 15,
			domain.DifficultyHard:   20,
		},
		TimeBonusCap:    5,
		StreakThreshold: 3,
		StreakBonus:     5,
		HintPenalty:     5,
	}
}

// Base returns the points for a correct answer at difficulty d. Unknown levels score as easy.
func (r Rules) Base(d domain.Difficulty) int {
	if p, ok := r.BasePoints[d]; ok {
		return p
	}
	return r.BasePoints[domain.DifficultyEasy]
}

// TimeBonus splits the limit into cap+1 equal windows; each elapsed window costs one point.
// A zero limit (timer off) earns nothing.
func (r Rules) TimeBonus(elapsed, limit time.Duration) int {
	if limit <= 0 || r.TimeBonusCap <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	window := limit / time.Duration(r.TimeBonusCap+1)
	if window <= 0 {
		return 0
	}
	bonus := r.TimeBonusCap - int(elapsed/window)
	if bonus < 0 {
		return 0
	}
	return bonus
}

// StreakBonusFor returns the bonus for a correct answer that brings the streak to streak.
func (r Rules) StreakBonusFor(streak int) int {
	if streak > r.StreakThreshold {
		return r.StreakBonus
	}
	return 0
}

// Award breaks down the points granted for one correct answer.
// HintPenalty is hint penalty still owed from earlier hints and settled from this award.
type Award struct {
	Base        int
	TimeBonus   int
	StreakBonus int
	HintPenalty int
}

// Total is the net points the award adds to the score.
func (a Award) Total() int {
	return a.Base + a.TimeBonus + a.StreakBonus - a.HintPenalty
}

// Keeper accumulates the running score of one session.
type Keeper struct {
	rules Rules

	total    int
	streak   int
	longest  int
	correct  int
	wrong    int
	skipped  int
	timedOut int
	hints    int
	owed     int
}

func NewKeeper(rules Rules) *Keeper {
	return &Keeper{rules: rules}
}

// Rules returns the rules the keeper scores with.
func (k *Keeper) Rules() Rules { return k.rules }

// Correct records a correct answer and returns what it earned.
func (k *Keeper) Correct(d domain.Difficulty, elapsed, limit time.Duration) Award {
	k.correct++
	k.streak++
	if k.streak > k.longest {
		k.longest = k.streak
	}
	award := Award{
		Base:        k.rules.Base(d),
		TimeBonus:   k.rules.TimeBonus(elapsed, limit),
		StreakBonus: k.rules.StreakBonusFor(k.streak),
	}
	if k.owed > 0 {
		award.HintPenalty = min(k.owed, award.Total())
		k.owed -= award.HintPenalty
	}
	k.total += award.Total()
	return award
}

// Wrong records an incorrect answer.
func (k *Keeper) Wrong() {
	k.wrong++
	k.streak = 0
}

// Skip records a skipped question.
func (k *Keeper) Skip() {
	k.skipped++
	k.streak = 0
}

// Timeout records an expired question; it scores like a wrong answer.
func (k *Keeper) Timeout() {
	k.timedOut++
	k.streak = 0
}

// Hint charges the full hint penalty and returns it. The total never goes below zero:
// whatever the current total cannot cover is owed and taken from the next correct answers.
func (k *Keeper) Hint() int {
	k.hints++
	penalty := k.rules.HintPenalty
	paid := min(penalty, k.total)
	k.total -= paid
	k.owed += penalty - paid
	return penalty
}

// Owed is hint penalty not yet deducted because the total was too low.
func (k *Keeper) Owed() int { return k.owed }

func (k *Keeper) Total() int         { return k.total }
func (k *Keeper) Streak() int        { return k.streak }
func (k *Keeper) LongestStreak() int { return k.longest }
func (k *Keeper) CorrectCount() int  { return k.correct }
func (k *Keeper) WrongCount() int    { return k.wrong }
func (k *Keeper) SkippedCount() int  { return k.skipped }
func (k *Keeper) TimedOutCount() int { return k.timedOut }
func (k *Keeper) HintsUsed() int     { return k.hints }
