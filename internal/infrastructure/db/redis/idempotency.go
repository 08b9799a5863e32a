package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "pending"
)

// IdempotencyStore maps client-supplied create keys to the meetup they produced.
// Key format: idempotency:meetup:<scope>:<key>, value "pending" until the create finishes.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims the key with SETNX. The first caller wins; later callers get
// the remembered meetup id, or "" while the first create is in flight.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (bool, string, error) {
	k := s.key(scope, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return true, "", nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET: treat as still in flight.
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("idempotency lookup: %w", err)
	}
	if id == pendingMarker {
		return false, "", nil
	}
	return false, id, nil
}

// Complete replaces the pending marker with meetupID, keeping the TTL fresh.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, meetupID string) error {
	if err := s.client.Set(ctx, s.key(scope, key), meetupID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, k string) string {
	return "idempotency:meetup:" + scope + ":" + k
}
