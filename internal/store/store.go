// Package store defines the shared ephemeral key/list store the core runs
// against, plus its Redis and in-memory implementations. The core is
// agnostic to the concrete technology and touches the store only through
// this operation set.
package store

import (
	"context"
	"time"
)

// Store is the minimal operation set the congestion core needs from an
// ephemeral store. The service layer depends on this interface, not a
// concrete implementation, which allows unit tests to run against MemStore
// or a hand-written mock.
//
// All implementations must bound every call by a timeout and surface
// timeouts and connection failures as domain.ErrStoreUnavailable.
type Store interface {
	// SetWithTTL stores value under key with the given time-to-live.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Exists reports whether key currently holds an unexpired entry.
	Exists(ctx context.Context, key string) (bool, error)

	// Append pushes value onto the tail of the list at key, creating the
	// list if needed. When ttl > 0 the list's expiry is reset to ttl, so a
	// token's history dies together with the token.
	Append(ctx context.Context, key, value string, ttl time.Duration) error

	// Range returns the full list at key in insertion order. A missing or
	// expired key yields an empty slice, not an error.
	Range(ctx context.Context, key string) ([]string, error)

	// Delete removes key and its value or list. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all unexpired keys that begin with prefix, both plain
	// entries and lists. Order is unspecified.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// TTL returns the remaining lifetime of key. It returns 0 when the key
	// does not exist, has expired, or carries no expiry.
	TTL(ctx context.Context, key string) (time.Duration, error)
}
