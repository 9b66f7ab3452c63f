package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/store"
)

// TokenValidator is the slice of the lifecycle manager the recorder depends
// on. Defining it here (in the consumer) keeps the recorder unit-testable
// without a real LifecycleService.
type TokenValidator interface {
	Validate(ctx context.Context, id string) (bool, error)
}

// RecorderService is the per-token zone-transition state machine. It
// validates the token and zone, suppresses duplicate scans within the same
// zone, and appends transitions to the token's history. Histories are
// append-only: they are never truncated on transition and die only with the
// token's TTL.
type RecorderService struct {
	store  store.Store
	tokens TokenValidator
	zones  domain.ZoneSet
	locks  keyedLocks
}

// NewRecorderService constructs a RecorderService.
func NewRecorderService(st store.Store, tokens TokenValidator, zones domain.ZoneSet) *RecorderService {
	return &RecorderService{store: st, tokens: tokens, zones: zones}
}

// Record applies one scan event (tokenID entered zone at now).
//
// Returns domain.ErrInvalidToken for an unknown or expired token and
// domain.ErrInvalidZone for a zone outside the configured set; neither
// mutates the history. A scan matching the history's tail zone returns a
// ScanAlreadyInZone outcome carrying the tail's timestamp — the sole
// deduplication rule. Anything else appends a new event.
//
// The tail-read, dedupe-check, and append run inside a per-token critical
// section, so concurrent scans of the same token cannot race. Scans of
// different tokens proceed independently.
func (s *RecorderService) Record(ctx context.Context, tokenID string, zone domain.Zone, now time.Time) (domain.ScanOutcome, error) {
	ok, err := s.tokens.Validate(ctx, tokenID)
	if err != nil {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", err)
	}
	if !ok {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", domain.ErrInvalidToken)
	}
	if !s.zones.Contains(zone) {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", domain.ErrInvalidZone)
	}

	unlock := s.locks.lock(tokenID)
	defer unlock()

	history := scansKey(tokenID)
	items, err := s.store.Range(ctx, history)
	if err != nil {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", err)
	}

	if len(items) > 0 {
		var tail domain.ScanEvent
		// A tail that fails to decode never suppresses a new scan.
		if err := json.Unmarshal([]byte(items[len(items)-1]), &tail); err == nil && tail.Zone == zone {
			return domain.ScanOutcome{
				Status:    domain.ScanAlreadyInZone,
				Zone:      zone,
				Timestamp: tail.Timestamp,
			}, nil
		}
	}

	payload, err := json.Marshal(domain.ScanEvent{Zone: zone, Timestamp: now})
	if err != nil {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: encode event: %w", err)
	}

	// Pin the history's expiry to the token's remaining lifetime so the
	// history disappears exactly when the token does.
	rem, err := s.store.TTL(ctx, tokenKey(tokenID))
	if err != nil {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", err)
	}
	if err := s.store.Append(ctx, history, string(payload), rem); err != nil {
		return domain.ScanOutcome{}, fmt.Errorf("service.RecorderService.Record: %w", err)
	}

	return domain.ScanOutcome{
		Status:    domain.ScanRecorded,
		Zone:      zone,
		Timestamp: now,
	}, nil
}

// keyedLocks provides a per-token critical section without allocating a lock
// per live token. Two tokens may share a stripe; that costs contention,
// never correctness.
type keyedLocks struct {
	stripes [64]sync.Mutex
}

// lock acquires the stripe for key and returns its release function.
func (k *keyedLocks) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	mu := &k.stripes[h.Sum32()%uint32(len(k.stripes))]
	mu.Lock()
	return mu.Unlock
}
