// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without a running store.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient opens a client connected to the Redis instance specified by
// the TEST_REDIS_ADDR environment variable.
//
// The test is skipped automatically if TEST_REDIS_ADDR is not set, so
// integration tests are opt-in and never break CI environments that lack a
// store. The client is closed automatically when the test finishes.
//
// Tests sharing one Redis instance must key their data under distinct
// prefixes; the helper does not flush the database.
func NewRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping Redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedisClient: ping: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}
