package memory

import (
	"context"
	"sort"
	"sync"

	"quizmaster/internal/domain"
)

// ScoreStore is an in-memory implementation of app.ScoreStore.
type ScoreStore struct {
	mu      sync.RWMutex
	entries []domain.HighScoreEntry
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{}
}

func (s *ScoreStore) Append(_ context.Context, entry domain.HighScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *ScoreStore) Top(_ context.Context, limit int) ([]domain.HighScoreEntry, error) {
	s.mu.RLock()
	entries := append([]domain.HighScoreEntry(nil), s.entries...)
	s.mu.RUnlock()
	return domain.RankHighScores(entries, limit), nil
}

// ProfileStore is an in-memory implementation of app.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.PlayerProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.PlayerProfile),
	}
}

func (s *ProfileStore) LoadProfile(_ context.Context, player string) (domain.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[player]
	if !ok {
		return domain.NewPlayerProfile(player), nil
	}
	return cloneProfile(profile), nil
}

func (s *ProfileStore) SaveProfile(_ context.Context, profile domain.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Player] = cloneProfile(profile)
	return nil
}

// Players lists every stored profile, ordered by name.
func (s *ProfileStore) Players(_ context.Context) ([]domain.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PlayerProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out, nil
}

// cloneProfile copies the achievements map so callers never share it with the store.
func cloneProfile(p domain.PlayerProfile) domain.PlayerProfile {
	unlocked := make(map[string]bool, len(p.Achievements))
	for id, ok := range p.Achievements {
		unlocked[id] = ok
	}
	p.Achievements = unlocked
	return p
}
