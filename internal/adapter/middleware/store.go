package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// store keeps one idempotency entry per key. An entry is reserved while the
// handler runs and committed with the final response.
type store struct {
	rdb *redis.Client
	ttl time.Duration
}

// reserve claims key for a new request; false means another request holds it.
func (s store) reserve(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (s store) load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, fmt.Errorf("entry %s expired", key)
	}
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, fmt.Errorf("entry %s: %w", key, err)
	}
	return e, nil
}

// commit replaces the reservation with the final response for the store TTL.
func (s store) commit(ctx context.Context, key string, e idempEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

// release drops a reservation so the client may retry.
func (s store) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
