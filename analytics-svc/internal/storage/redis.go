package storage

import (
	"context"
	"strconv"

	"ginraidee/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisLeaderboard struct {
	Client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{Client: client}
}

// Top returns the highest scoring food ids of key. Non-numeric members are skipped.
func (l *RedisLeaderboard) Top(ctx context.Context, key string, limit int) ([]domain.FoodCount, error) {
	members, err := l.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.FoodCount, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m.Member.(string))
		if err != nil {
			continue
		}
		out = append(out, domain.FoodCount{FoodID: id, Score: m.Score})
	}
	return out, nil
}

// TopMembers is Top for sets whose members are not food ids.
func (l *RedisLeaderboard) TopMembers(ctx context.Context, key string, limit int) (map[string]float64, error) {
	members, err := l.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(members))
	for _, m := range members {
		out[m.Member.(string)] = m.Score
	}
	return out, nil
}
