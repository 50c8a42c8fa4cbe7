package storage

import (
	"context"
	"strconv"
	"time"

	"ginraidee/agg-svc/internal/domain"
	"ginraidee/leaderboard"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
		now: time.Now,
	}
}

// WithClock replaces time.Now for events that carry no timestamp.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) RecordSelection(ctx context.Context, event domain.Event) error {
	member := strconv.Itoa(event.FoodID)
	dailyKey := leaderboard.SelectionsDaily(s.day(event))

	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, dailyKey, 1, member)
	pipe.Expire(ctx, dailyKey, leaderboard.DailyTTL)
	pipe.ZIncrBy(ctx, leaderboard.SelectionsAllTime, 1, member)
	if event.Category != "" {
		pipe.ZIncrBy(ctx, leaderboard.Categories, 1, event.Category)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) RecordFeedback(ctx context.Context, event domain.Event) error {
	member := strconv.Itoa(event.FoodID)
	dailyKey := leaderboard.FeedbackDaily(event.Action, s.day(event))

	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboard.Feedback(event.Action), 1, member)
	pipe.ZIncrBy(ctx, dailyKey, 1, member)
	pipe.Expire(ctx, dailyKey, leaderboard.DailyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) day(event domain.Event) string {
	if event.Timestamp.IsZero() {
		return leaderboard.Day(s.now())
	}
	return leaderboard.Day(event.Timestamp)
}
