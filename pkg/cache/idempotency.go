package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	claimProcessing = "processing"
	claimDone       = "done"
)

// IdempotencyStore hands out one-shot claims on delivery keys.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

func NewIdempotencyStore(client *redis.Client, prefix string) *IdempotencyStore {
	return &IdempotencyStore{client: client, prefix: prefix}
}

func (s *IdempotencyStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

// Claim returns true when the caller is the first to see key within ttl.
func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), claimProcessing, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), claimDone, ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

// Release drops a claim so the delivery can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
