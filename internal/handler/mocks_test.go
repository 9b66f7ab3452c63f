package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/handler"
)

// Hand-written test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockTokenIssuer struct {
	issue func(ctx context.Context) (domain.Token, error)
}

func (m *mockTokenIssuer) Issue(ctx context.Context) (domain.Token, error) {
	return m.issue(ctx)
}

type mockScanRecorder struct {
	record func(ctx context.Context, tokenID string, zone domain.Zone, now time.Time) (domain.ScanOutcome, error)
}

func (m *mockScanRecorder) Record(ctx context.Context, tokenID string, zone domain.Zone, now time.Time) (domain.ScanOutcome, error) {
	return m.record(ctx, tokenID, zone, now)
}

type mockCongestionProvider struct {
	compute func(ctx context.Context, now time.Time) (domain.CongestionReport, error)
}

func (m *mockCongestionProvider) Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error) {
	return m.compute(ctx, now)
}

// compile-time checks against the handler interfaces.
var (
	_ handler.TokenIssuer        = (*mockTokenIssuer)(nil)
	_ handler.ScanRecorder       = (*mockScanRecorder)(nil)
	_ handler.CongestionProvider = (*mockCongestionProvider)(nil)
)

// newHTTPHandler wires a Server with the given mocks into its router,
// mirroring how main.go wires it in production. Nil mocks are fine for
// endpoints a test does not touch.
func newHTTPHandler(tokens handler.TokenIssuer, scans handler.ScanRecorder, congestion handler.CongestionProvider) http.Handler {
	return handler.NewServer(tokens, scans, congestion, "http://localhost:8080", 300).Routes()
}
