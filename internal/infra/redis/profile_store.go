package redis

import (
	"context"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"quizmaster/internal/domain"
)

// ProfileStore keeps one hash of statistics and one set of unlocked achievements per player:
//
//	HSET quiz:profile:{player} games 3 answered 30 correct 21 highest 180 streak 6
//	SADD quiz:profile:{player}:achievements first_game streak_5
//	SADD quiz:players {player}
type ProfileStore struct {
	client *redis.Client
}

func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client}
}

func (s *ProfileStore) LoadProfile(ctx context.Context, player string) (domain.PlayerProfile, error) {
	profile := domain.NewPlayerProfile(player)

	var stats *redis.MapStringStringCmd
	var unlocked *redis.StringSliceCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		stats = pipe.HGetAll(ctx, s.key(player))
		unlocked = pipe.SMembers(ctx, s.achievementsKey(player))
		return nil
	})
	if err != nil && !isNil(err) {
		return domain.PlayerProfile{}, err
	}

	fields := stats.Val()
	profile.GamesPlayed = atoi(fields["games"])
	profile.QuestionsAnswered = atoi(fields["answered"])
	profile.CorrectAnswers = atoi(fields["correct"])
	profile.HighestScore = atoi(fields["highest"])
	profile.BestStreak = atoi(fields["streak"])
	profile.Unlock(unlocked.Val()...)
	return profile, nil
}

// SaveProfile overwrites the statistics and adds any new unlocks; unlocks are never removed.
func (s *ProfileStore) SaveProfile(ctx context.Context, profile domain.PlayerProfile) error {
	var ids []interface{}
	for id, ok := range profile.Achievements {
		if ok {
			ids = append(ids, id)
		}
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key(profile.Player), map[string]interface{}{
			"games":    profile.GamesPlayed,
			"answered": profile.QuestionsAnswered,
			"correct":  profile.CorrectAnswers,
			"highest":  profile.HighestScore,
			"streak":   profile.BestStreak,
		})
		if len(ids) > 0 {
			pipe.SAdd(ctx, s.achievementsKey(profile.Player), ids...)
		}
		pipe.SAdd(ctx, playersKey, profile.Player)
		return nil
	})
	return err
}

// Players lists every player that has a saved profile, ordered by name.
func (s *ProfileStore) Players(ctx context.Context) ([]domain.PlayerProfile, error) {
	names, err := s.client.SMembers(ctx, playersKey).Result()
	if err != nil && !isNil(err) {
		return nil, err
	}
	sort.Strings(names)
	out := make([]domain.PlayerProfile, 0, len(names))
	for _, name := range names {
		p, err := s.LoadProfile(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

const playersKey = "quiz:players"

func (s *ProfileStore) key(player string) string {
	return "quiz:profile:" + player
}

func (s *ProfileStore) achievementsKey(player string) string {
	return "quiz:profile:" + player + ":achievements"
}

func atoi(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
