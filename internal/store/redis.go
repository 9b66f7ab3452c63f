package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/surgeproject/surge/internal/domain"
)

// RedisStore implements Store on a Redis connection. Every call is bounded
// by the configured timeout; any failure — including a deadline — comes back
// wrapped in domain.ErrStoreUnavailable so callers never need to inspect
// redis-specific errors.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStore constructs a RedisStore around an already-configured client.
// timeout bounds each individual store call.
func NewRedisStore(client *redis.Client, timeout time.Duration) *RedisStore {
	return &RedisStore{client: client, timeout: timeout}
}

// compile-time check: RedisStore must satisfy Store.
var _ Store = (*RedisStore)(nil)

// bound derives a per-call context with the store timeout applied.
func (s *RedisStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// unavailable wraps a redis error in the domain sentinel, keeping the
// original message for logs.
func unavailable(op string, err error) error {
	return fmt.Errorf("store.RedisStore.%s: %w: %s", op, domain.ErrStoreUnavailable, err)
}

func (s *RedisStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return unavailable("SetWithTTL", err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, unavailable("Exists", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Append(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	// RPUSH and EXPIRE travel in one pipeline so the list never sits
	// without an expiry between the two commands.
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, value)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("Append", err)
	}
	return nil
}

func (s *RedisStore) Range(ctx context.Context, key string) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	items, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, unavailable("Range", err)
	}
	return items, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return unavailable("Delete", err)
	}
	return nil
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	// SCAN rather than KEYS: KEYS blocks the server on large keyspaces.
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, unavailable("Keys", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, unavailable("TTL", err)
	}
	// Redis reports -2 for a missing key and -1 for a key without expiry.
	if d < 0 {
		return 0, nil
	}
	return d, nil
}
