package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/surgeproject/surge/internal/domain"
)

// zoneSnapshotResponse is the per-zone JSON shape inside GET /congestion.
// Scores and dwell times are rounded to two decimals for presentation; the
// raw values stay internal.
type zoneSnapshotResponse struct {
	CongestionLevel     string  `json:"congestion_level"`
	CongestionScore     float64 `json:"congestion_score"`
	AvgDwellTimeSeconds float64 `json:"avg_dwell_time_seconds"`
	ScanCountInWindow   int     `json:"scan_count_in_window"`
}

// congestionResponse is the JSON body of GET /congestion. It intentionally
// contains no token identifiers.
type congestionResponse struct {
	Zones         map[string]zoneSnapshotResponse `json:"zones"`
	ComputedAt    time.Time                       `json:"computed_at"`
	WindowMinutes int                             `json:"window_minutes"`
}

// GetCongestion handles GET /congestion.
// It returns the anonymized zone-level congestion heatmap: one entry per
// configured zone (plus any zone observed in the data), even when there is
// no activity at all.
func (s *Server) GetCongestion(w http.ResponseWriter, r *http.Request) {
	report, err := s.congestion.Compute(r.Context(), time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToResponse(report))
}

// reportToResponse maps a domain report to its wire shape.
func reportToResponse(report domain.CongestionReport) congestionResponse {
	zones := make(map[string]zoneSnapshotResponse, len(report.Zones))
	for z, snap := range report.Zones {
		zones[string(z)] = zoneSnapshotResponse{
			CongestionLevel:     snap.Level.String(),
			CongestionScore:     round2(snap.Score),
			AvgDwellTimeSeconds: round2(snap.AvgDwellSeconds),
			ScanCountInWindow:   snap.ScanCountInWindow,
		}
	}
	return congestionResponse{
		Zones:         zones,
		ComputedAt:    report.ComputedAt,
		WindowMinutes: report.WindowMinutes,
	}
}

// round2 rounds x to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
