// Package idempotency deduplicates mutation requests by client-supplied key.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrConflict   = errors.New("duplicate request already in progress or completed")
	ErrKeyMissing = errors.New("idempotency key required")
)

const keyPrefix = "idem:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Acquire claims key for scope. A second claim before Release or expiry
// returns ErrConflict.
func (s *Store) Acquire(ctx context.Context, scope, key string) error {
	if key == "" {
		return ErrKeyMissing
	}
	ok, err := s.client.SetNX(ctx, s.redisKey(scope, key), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire idempotency key: %w", err)
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

// Release drops a claim so a failed request can be retried with the same key.
func (s *Store) Release(ctx context.Context, scope, key string) error {
	if key == "" {
		return ErrKeyMissing
	}
	if err := s.client.Del(ctx, s.redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func (s *Store) redisKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}
