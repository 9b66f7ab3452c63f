package service_test

import (
	"context"
	"time"

	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/service"
	"github.com/surgeproject/surge/internal/store"
)

// ---- mock store --------------------------------------------------------

// mockStore is a hand-written test double for store.Store.
// Set only the method fields your test needs; unset methods succeed with
// zero values, so error-injection tests stay short.
type mockStore struct {
	setWithTTL func(ctx context.Context, key, value string, ttl time.Duration) error
	exists     func(ctx context.Context, key string) (bool, error)
	append     func(ctx context.Context, key, value string, ttl time.Duration) error
	rng        func(ctx context.Context, key string) ([]string, error)
	delete     func(ctx context.Context, key string) error
	keys       func(ctx context.Context, prefix string) ([]string, error)
	ttl        func(ctx context.Context, key string) (time.Duration, error)
}

func (m *mockStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.setWithTTL != nil {
		return m.setWithTTL(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Append(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.append != nil {
		return m.append(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Range(ctx context.Context, key string) ([]string, error) {
	if m.rng != nil {
		return m.rng(ctx, key)
	}
	return []string{}, nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	if m.delete != nil {
		return m.delete(ctx, key)
	}
	return nil
}

func (m *mockStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if m.keys != nil {
		return m.keys(ctx, prefix)
	}
	return nil, nil
}

func (m *mockStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	if m.ttl != nil {
		return m.ttl(ctx, key)
	}
	return 0, nil
}

// compile-time check: mockStore must satisfy store.Store.
var _ store.Store = (*mockStore)(nil)

// ---- mock token validator ------------------------------------------------

// mockValidator is a test double for service.TokenValidator.
type mockValidator struct {
	validate func(ctx context.Context, id string) (bool, error)
}

func (m *mockValidator) Validate(ctx context.Context, id string) (bool, error) {
	return m.validate(ctx, id)
}

// compile-time check: mockValidator must satisfy service.TokenValidator.
var _ service.TokenValidator = (*mockValidator)(nil)

// alwaysValid accepts every token.
var alwaysValid = &mockValidator{
	validate: func(context.Context, string) (bool, error) { return true, nil },
}

// ---- mock congestion computer ---------------------------------------------

// mockComputer is a test double for service.CongestionComputer.
type mockComputer struct {
	compute func(ctx context.Context, now time.Time) (domain.CongestionReport, error)
}

func (m *mockComputer) Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error) {
	return m.compute(ctx, now)
}

// compile-time check: mockComputer must satisfy service.CongestionComputer.
var _ service.CongestionComputer = (*mockComputer)(nil)
