package database

import (
	"context"
	"time"

	"event-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis for response caching and rate limiting.
// Returns nil when Redis is disabled or unreachable; callers degrade to
// pass-through behavior instead of failing startup.
func InitRedis(config utils.RedisConfig) *redis.Client {
	if !config.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
