package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"quizmaster/internal/domain"
)

// ScoreStore is an append-only CSV log of high scores:
//
//	id,name,score,category,difficulty,timestamp
//
// Two-column "name,score" lines from older files are still read.
type ScoreStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewScoreStore(path string, logger *zap.Logger) *ScoreStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreStore{path: path, logger: logger}
}

func (s *ScoreStore) Append(ctx context.Context, entry domain.HighScoreEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open score log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encodeEntry(entry)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Top returns the best entries. A missing file is an empty log; unreadable lines are skipped.
func (s *ScoreStore) Top(ctx context.Context, limit int) ([]domain.HighScoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open score log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var entries []domain.HighScoreEntry
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.logger.Warn("skipping corrupt score line", zap.String("path", s.path), zap.Int("line", line), zap.Error(err))
				continue
			}
			return nil, err
		}
		entry, err := decodeEntry(rec)
		if err != nil {
			s.logger.Warn("skipping corrupt score line", zap.String("path", s.path), zap.Int("line", line), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return domain.RankHighScores(entries, limit), nil
}

func encodeEntry(e domain.HighScoreEntry) []string {
	return []string{
		e.ID,
		e.Player,
		strconv.Itoa(e.Score),
		e.Category,
		e.Difficulty,
		e.RecordedAt.UTC().Format(time.RFC3339),
	}
}

func decodeEntry(rec []string) (domain.HighScoreEntry, error) {
	switch len(rec) {
	case 2:
		score, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return domain.HighScoreEntry{}, fmt.Errorf("bad score %q", rec[1])
		}
		return domain.HighScoreEntry{Player: domain.PlayerName(rec[0]), Score: score}, nil
	case 6:
		score, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return domain.HighScoreEntry{}, fmt.Errorf("bad score %q", rec[2])
		}
		at, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[5]))
		if err != nil {
			return domain.HighScoreEntry{}, fmt.Errorf("bad timestamp %q", rec[5])
		}
		return domain.HighScoreEntry{
			ID:         rec[0],
			Player:     domain.PlayerName(rec[1]),
			Score:      score,
			Category:   rec[3],
			Difficulty: rec[4],
			RecordedAt: at,
		}, nil
	}
	return domain.HighScoreEntry{}, fmt.Errorf("expected 6 fields, got %d", len(rec))
}
