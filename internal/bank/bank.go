// Package bank holds the in-memory question bank.
package bank

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"quizmaster/internal/domain"
)

// Loader fetches every question from a backing source (file, Postgres, cache).
type Loader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// Bank is an immutable set of validated questions.
type Bank struct {
	questions []domain.Question
	rnd       *rand.Rand
}

// Option configures a Bank.
type Option func(*Bank)

// WithRand makes shuffling deterministic, for tests.
func WithRand(rnd *rand.Rand) Option {
	return func(b *Bank) { b.rnd = rnd }
}

// Load reads all questions from loader. Any failure, including a single invalid
// question, is reported as a *domain.LoadError and nothing is loaded.
func Load(ctx context.Context, loader Loader, opts ...Option) (*Bank, error) {
	questions, err := loader.LoadQuestions(ctx)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &domain.LoadError{Source: sourceName(loader), Err: err}
	}
	b, err := New(questions, opts...)
	if err != nil {
		return nil, &domain.LoadError{Source: sourceName(loader), Err: err}
	}
	return b, nil
}

// New validates questions and builds a bank.
func New(questions []domain.Question, opts ...Option) (*Bank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, q := range questions {
		if err := Check(q); err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i+1, q.ID, err)
		}
	}
	b := &Bank{
		questions: append([]domain.Question(nil), questions...),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Check enforces the question invariants: four options with distinct ids and texts,
// and a correct id naming one of them.
func Check(q domain.Question) error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	ids := make(map[string]struct{}, len(q.Options))
	texts := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := ids[opt.ID]; dup {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		if _, dup := texts[opt.Text]; dup {
			return fmt.Errorf("duplicate option %q", opt.Text)
		}
		ids[opt.ID] = struct{}{}
		texts[opt.Text] = struct{}{}
	}
	if _, ok := ids[q.CorrectID]; !ok {
		return fmt.Errorf("correct option %q not among options", q.CorrectID)
	}
	return nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.questions) }

// All returns a copy of every question in load order.
func (b *Bank) All() []domain.Question {
	return append([]domain.Question(nil), b.questions...)
}

// Filter returns the matching questions as a lazily shuffled sequence.
func (b *Bank) Filter(f domain.Filter) (*Sequence, error) {
	var matched []domain.Question
	for _, q := range b.questions {
		if f.Matches(q) {
			matched = append(matched, q)
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrEmptySet
	}
	return &Sequence{items: matched, rnd: b.rnd}, nil
}

// Sample draws up to n matching questions without replacement.
func (b *Bank) Sample(f domain.Filter, n int) ([]domain.Question, error) {
	seq, err := b.Filter(f)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > seq.Len() {
		n = seq.Len()
	}
	out := make([]domain.Question, 0, n)
	for len(out) < n {
		q, _ := seq.Next()
		out = append(out, q)
	}
	return out, nil
}

// Categories lists the distinct categories, sorted.
func (b *Bank) Categories() []string {
	return b.distinct(func(q domain.Question) string { return q.Category })
}

// Difficulties lists the distinct difficulty levels, sorted.
func (b *Bank) Difficulties() []string {
	return b.distinct(func(q domain.Question) string { return string(q.Difficulty) })
}

// Shuffle returns a shuffled copy of opts using the bank's source of randomness.
func (b *Bank) Shuffle(opts []domain.Option) []domain.Option {
	out := append([]domain.Option(nil), opts...)
	b.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (b *Bank) distinct(key func(domain.Question) string) []string {
	set := make(map[string]struct{})
	for _, q := range b.questions {
		set[key(q)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sequence yields a finite set of questions in random order. Each Next performs one
// Fisher-Yates step, so only drawn items are ever shuffled.
type Sequence struct {
	items []domain.Question
	drawn int
	rnd   *rand.Rand
}

// Len is the total number of items in the sequence.
func (s *Sequence) Len() int { return len(s.items) }

// Remaining is the number of items not yet drawn.
func (s *Sequence) Remaining() int { return len(s.items) - s.drawn }

// Next returns the next random item, or false once the sequence is exhausted.
func (s *Sequence) Next() (domain.Question, bool) {
	if s.drawn >= len(s.items) {
		return domain.Question{}, false
	}
	j := s.drawn + s.rnd.Intn(len(s.items)-s.drawn)
	s.items[s.drawn], s.items[j] = s.items[j], s.items[s.drawn]
	q := s.items[s.drawn]
	s.drawn++
	return q, true
}

func sourceName(loader Loader) string {
	if named, ok := loader.(interface{ Source() string }); ok {
		return named.Source()
	}
	return fmt.Sprintf("%T", loader)
}
