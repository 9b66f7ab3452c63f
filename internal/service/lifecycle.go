package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/store"
)

// LifecycleService issues and validates ephemeral tokens. Each Issue call
// produces an independent, unrelated token, even for the same physical
// carrier — there are no renewal semantics.
type LifecycleService struct {
	store store.Store
	ttl   time.Duration
}

// NewLifecycleService constructs a LifecycleService. ttl is the configured
// token lifetime.
func NewLifecycleService(st store.Store, ttl time.Duration) *LifecycleService {
	return &LifecycleService{store: st, ttl: ttl}
}

// Issue mints a fresh opaque token and registers it in the store with the
// configured TTL. It fails only when the store is unreachable.
func (s *LifecycleService) Issue(ctx context.Context) (domain.Token, error) {
	now := time.Now().UTC()
	tok := domain.Token{
		ID:        uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.SetWithTTL(ctx, tokenKey(tok.ID.String()), "active", s.ttl); err != nil {
		return domain.Token{}, fmt.Errorf("service.LifecycleService.Issue: %w", err)
	}
	return tok, nil
}

// Validate reports whether the store still holds an unexpired entry for id.
// An absent entry is the only invalidity signal; expiry is the store's job.
func (s *LifecycleService) Validate(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.Exists(ctx, tokenKey(id))
	if err != nil {
		return false, fmt.Errorf("service.LifecycleService.Validate: %w", err)
	}
	return ok, nil
}
