package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"quizmaster/internal/domain"
)

// ProfileStore keeps every player's statistics and unlocked achievements in one JSON document.
type ProfileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

type profileDocument struct {
	Players map[string]domain.PlayerProfile `json:"players"`
}

func NewProfileStore(path string, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileStore{path: path, logger: logger}
}

func (s *ProfileStore) LoadProfile(ctx context.Context, player string) (domain.PlayerProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlayerProfile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return domain.PlayerProfile{}, err
	}
	profile, ok := doc.Players[player]
	if !ok {
		return domain.NewPlayerProfile(player), nil
	}
	profile.Player = player
	if profile.Achievements == nil {
		profile.Achievements = make(map[string]bool)
	}
	return profile, nil
}

// SaveProfile re-reads the document and replaces only this player's entry.
func (s *ProfileStore) SaveProfile(ctx context.Context, profile domain.PlayerProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Players[profile.Player] = profile

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return writeAtomic(s.path, data)
}

// Players lists every stored profile, ordered by name.
func (s *ProfileStore) Players(ctx context.Context) ([]domain.PlayerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]domain.PlayerProfile, 0, len(doc.Players))
	for name, p := range doc.Players {
		p.Player = name
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out, nil
}

// read returns the stored document. Missing or corrupt files read as empty.
func (s *ProfileStore) read() (profileDocument, error) {
	doc := profileDocument{Players: make(map[string]domain.PlayerProfile)}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read profiles: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("profile store corrupt, treating as empty", zap.String("path", s.path), zap.Error(err))
		return profileDocument{Players: make(map[string]domain.PlayerProfile)}, nil
	}
	if doc.Players == nil {
		doc.Players = make(map[string]domain.PlayerProfile)
	}
	return doc, nil
}
