// Package handler implements the HTTP surface of the SURGE API. Handlers are
// thin: decode the request, call a service through an interface defined
// here, and map the result (or sentinel error) to a protocol response.
// Methods are split into per-endpoint files but all share the Server struct.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/surgeproject/surge/internal/domain"
)

// TokenIssuer defines the lifecycle operation the issue handler depends on.
// Defining interfaces in the consumer package follows the Go convention
// ("accept interfaces, return concrete types") and lets handler tests inject
// a mock without a store or service layer.
type TokenIssuer interface {
	Issue(ctx context.Context) (domain.Token, error)
}

// ScanRecorder defines the recording operation the scan handler depends on.
type ScanRecorder interface {
	Record(ctx context.Context, tokenID string, zone domain.Zone, now time.Time) (domain.ScanOutcome, error)
}

// CongestionProvider defines the aggregation operation the congestion
// handlers depend on. Both the on-demand aggregator and the periodic
// refresher satisfy it.
type CongestionProvider interface {
	Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error)
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	tokens     TokenIssuer
	scans      ScanRecorder
	congestion CongestionProvider
	qrBaseURL  string
	qrSize     int
}

// NewServer constructs the Server with all its dependencies. qrBaseURL and
// qrSize configure the QR artifact returned by /issue.
func NewServer(tokens TokenIssuer, scans ScanRecorder, congestion CongestionProvider, qrBaseURL string, qrSize int) *Server {
	return &Server{
		tokens:     tokens,
		scans:      scans,
		congestion: congestion,
		qrBaseURL:  qrBaseURL,
		qrSize:     qrSize,
	}
}

// Routes returns the router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/issue", s.IssueToken)
	r.Post("/scan", s.RecordScan)
	r.Get("/congestion", s.GetCongestion)
	r.Get("/congestion/export", s.ExportCongestion)
	return r
}
