package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"quizmaster/internal/domain"
)

const (
	scoreRankKey    = "quiz:scores"
	scoreEntriesKey = "quiz:scores:entries"
)

// ScoreStore keeps the high-score log in Redis.
// Ranking is a sorted set:   ZADD quiz:scores {score} {entryID}
// Entries live in a hash:    HSET quiz:scores:entries {entryID} {json}
type ScoreStore struct {
	client *redis.Client
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client}
}

func (s *ScoreStore) Append(ctx context.Context, entry domain.HighScoreEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("high score entry needs an id")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, scoreEntriesKey, entry.ID, data)
		pipe.ZAdd(ctx, scoreRankKey, redis.Z{Score: float64(entry.Score), Member: entry.ID})
		return nil
	})
	return err
}

// Top reads the best limit entries. Entries tied with the last place are fetched too so
// the earlier-recorded tie-break is applied before truncating.
func (s *ScoreStore) Top(ctx context.Context, limit int) ([]domain.HighScoreEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ranked, err := s.client.ZRevRangeWithScores(ctx, scoreRankKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(ranked))
	for _, z := range ranked {
		ids = append(ids, z.Member.(string))
	}
	if limit > 0 && len(ranked) == limit {
		floor := strconv.FormatFloat(ranked[len(ranked)-1].Score, 'f', -1, 64)
		ids, err = s.client.ZRevRangeByScore(ctx, scoreRankKey, &redis.ZRangeBy{Min: floor, Max: "+inf"}).Result()
		if err != nil {
			return nil, err
		}
	}

	values, err := s.client.HMGet(ctx, scoreEntriesKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.HighScoreEntry, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var e domain.HighScoreEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return domain.RankHighScores(entries, limit), nil
}
