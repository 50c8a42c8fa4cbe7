package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDislikeCache keeps one set per user per day: dislikes:<day>:<user>.
type RedisDislikeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDislikeCache(client *redis.Client, ttl time.Duration) *RedisDislikeCache {
	return &RedisDislikeCache{Client: client, TTL: ttl}
}

func (c *RedisDislikeCache) DislikeKey(userID, day string) string {
	return "dislikes:" + day + ":" + userID
}

func (c *RedisDislikeCache) AddDislike(ctx context.Context, userID, day string, foodID int) error {
	key := c.DislikeKey(userID, day)
	pipe := c.Client.TxPipeline()
	pipe.SAdd(ctx, key, strconv.Itoa(foodID))
	pipe.Expire(ctx, key, c.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisDislikeCache) Dislikes(ctx context.Context, userID, day string) ([]int, error) {
	members, err := c.Client.SMembers(ctx, c.DislikeKey(userID, day)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		if id, err := strconv.Atoi(m); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
