package connection

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// NewRedis connects to the Redis instance backing the mail queue.
func NewRedis(ctx context.Context, redisHost string) (*redis.Client, error) {
	if redisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST environment variable is not set")
	}

	log.Println("Connecting to Redis at:", redisHost)

	redisClient := redis.NewClient(&redis.Options{
		Addr:      redisHost,
		Password:  "",
		TLSConfig: nil,
	})

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Successfully connected to Redis")
	return redisClient, nil
}
