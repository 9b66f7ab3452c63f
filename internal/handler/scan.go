package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/surgeproject/surge/internal/domain"
)

// scanRequest is the JSON body for POST /scan, sent by scanning devices.
type scanRequest struct {
	SurgeID string `json:"surge_id"`
	Zone    string `json:"zone"`
}

// scanResponse is the JSON shape returned for both scan outcomes.
type scanResponse struct {
	Status    string    `json:"status"`
	Zone      string    `json:"zone"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordScan handles POST /scan.
// A newly recorded transition and a suppressed duplicate are both 200s; the
// status field distinguishes them, and the duplicate carries the timestamp
// of the scan that already placed the token in the zone.
func (s *Server) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}
	if req.SurgeID == "" || req.Zone == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "surge_id and zone are required")
		return
	}

	outcome, err := s.scans.Record(r.Context(), req.SurgeID, domain.Zone(req.Zone), time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := "recorded"
	if outcome.Status == domain.ScanAlreadyInZone {
		status = "already_in_zone"
	}
	writeJSON(w, http.StatusOK, scanResponse{
		Status:    status,
		Zone:      string(outcome.Zone),
		Timestamp: outcome.Timestamp,
	})
}
