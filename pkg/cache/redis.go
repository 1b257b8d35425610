package cache

import (
	"context"
	"fmt"
	"time"

	"fleet-dispatch/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// New connects to redis and fails fast when the server is unreachable.
func New(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", config.Addr, err)
	}

	return client, nil
}
