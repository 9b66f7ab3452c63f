package store

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemStore is a thread-safe in-memory implementation of Store. It backs
// unit tests and local development runs where no Redis is available.
//
// Expiry is passive, matching Redis semantics: an expired entry is simply
// invisible to reads and is dropped the next time it is touched. There is
// no background sweep.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	lists   map[string]memList
	now     func() time.Time
}

type memEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

type memList struct {
	items     []string
	expiresAt time.Time
}

// Option configures a MemStore.
type Option func(*MemStore)

// WithClock replaces the store's time source. Tests use this to step time
// forward instead of sleeping.
func WithClock(now func() time.Time) Option {
	return func(m *MemStore) { m.now = now }
}

// NewMemStore returns an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	m := &MemStore{
		entries: make(map[string]memEntry),
		lists:   make(map[string]memList),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// compile-time check: MemStore must satisfy Store.
var _ Store = (*MemStore)(nil)

// alive reports whether an expiry timestamp is still in the future.
// A zero timestamp means the key never expires.
func (m *MemStore) alive(expiresAt time.Time) bool {
	return expiresAt.IsZero() || m.now().Before(expiresAt)
}

func (m *MemStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *MemStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if ok && !m.alive(e.expiresAt) {
		delete(m.entries, key)
		return false, nil
	}
	return ok, nil
}

func (m *MemStore) Append(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.lists[key]
	if len(l.items) > 0 && !m.alive(l.expiresAt) {
		l = memList{}
	}
	l.items = append(l.items, value)
	if ttl > 0 {
		l.expiresAt = m.now().Add(ttl)
	}
	m.lists[key] = l
	return nil
}

func (m *MemStore) Range(ctx context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[key]
	if !ok || !m.alive(l.expiresAt) {
		return []string{}, nil
	}
	// Copy so callers cannot observe later appends through the slice.
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out, nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	delete(m.lists, key)
	return nil
}

func (m *MemStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k, e := range m.entries {
		if strings.HasPrefix(k, prefix) && m.alive(e.expiresAt) {
			keys = append(keys, k)
		}
	}
	for k, l := range m.lists {
		if strings.HasPrefix(k, prefix) && m.alive(l.expiresAt) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *MemStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expiresAt time.Time
	if e, ok := m.entries[key]; ok {
		expiresAt = e.expiresAt
	} else if l, ok := m.lists[key]; ok {
		expiresAt = l.expiresAt
	} else {
		return 0, nil
	}

	if expiresAt.IsZero() {
		return 0, nil
	}
	rem := expiresAt.Sub(m.now())
	if rem < 0 {
		return 0, nil
	}
	return rem, nil
}
