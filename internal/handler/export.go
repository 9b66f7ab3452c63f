// Package handler — export.go implements GET /congestion/export.
// Returns the current congestion snapshot as a flat per-zone table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/surgeproject/surge/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"zone", "congestion_level", "congestion_score",
	"avg_dwell_time_seconds", "scan_count_in_window",
}

// exportRow is one flat line of the export, JSON or CSV.
type exportRow struct {
	Zone                string  `json:"zone"`
	CongestionLevel     string  `json:"congestion_level"`
	CongestionScore     float64 `json:"congestion_score"`
	AvgDwellTimeSeconds float64 `json:"avg_dwell_time_seconds"`
	ScanCountInWindow   int     `json:"scan_count_in_window"`
}

// ExportCongestion handles GET /congestion/export.
// Rows are sorted by zone name so exports are diffable between runs.
func (s *Server) ExportCongestion(w http.ResponseWriter, r *http.Request) {
	report, err := s.congestion.Compute(r.Context(), time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows := reportToRows(report)
	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// reportToRows flattens a report into export rows sorted by zone.
func reportToRows(report domain.CongestionReport) []exportRow {
	rows := make([]exportRow, 0, len(report.Zones))
	for z, snap := range report.Zones {
		rows = append(rows, exportRow{
			Zone:                string(z),
			CongestionLevel:     snap.Level.String(),
			CongestionScore:     round2(snap.Score),
			AvgDwellTimeSeconds: round2(snap.AvgDwellSeconds),
			ScanCountInWindow:   snap.ScanCountInWindow,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Zone < rows[j].Zone })
	return rows
}

// writeCSV encodes rows as CSV directly to the response.
func writeCSV(w http.ResponseWriter, rows []exportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	//nolint:errcheck — flush reports any underlying write error below.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.Zone,
			row.CongestionLevel,
			strconv.FormatFloat(row.CongestionScore, 'f', 2, 64),
			strconv.FormatFloat(row.AvgDwellTimeSeconds, 'f', 2, 64),
			strconv.Itoa(row.ScanCountInWindow),
		})
	}
	cw.Flush()
}
