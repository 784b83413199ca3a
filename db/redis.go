package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const EvidenceKeyPrefix = "agni:evidence:"

func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func CloseRedis(client *redis.Client) {
	if client != nil {
		client.Close()
	}
}
