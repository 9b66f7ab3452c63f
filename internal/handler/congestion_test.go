package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surgeproject/surge/internal/domain"
)

func reportFixture() domain.CongestionReport {
	return domain.CongestionReport{
		Zones: map[domain.Zone]domain.ZoneCongestionSnapshot{
			"security": {
				Zone:              "security",
				Level:             domain.CongestionMedium,
				Score:             120.456,
				AvgDwellSeconds:   60.228,
				ScanCountInWindow: 2,
			},
			"gate": {
				Zone:  "gate",
				Level: domain.CongestionLow,
			},
		},
		ComputedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		WindowMinutes: 5,
	}
}

// TestGetCongestion_200 verifies the heatmap response shape: per-zone
// levels, two-decimal rounding, and no token identifiers anywhere.
func TestGetCongestion_200(t *testing.T) {
	congestion := &mockCongestionProvider{
		compute: func(context.Context, time.Time) (domain.CongestionReport, error) {
			return reportFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/congestion", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, congestion).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Zones map[string]struct {
			CongestionLevel     string  `json:"congestion_level"`
			CongestionScore     float64 `json:"congestion_score"`
			AvgDwellTimeSeconds float64 `json:"avg_dwell_time_seconds"`
			ScanCountInWindow   int     `json:"scan_count_in_window"`
		} `json:"zones"`
		WindowMinutes int `json:"window_minutes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Zones, 2)
	security := resp.Zones["security"]
	assert.Equal(t, "MEDIUM", security.CongestionLevel)
	assert.Equal(t, 120.46, security.CongestionScore)
	assert.Equal(t, 60.23, security.AvgDwellTimeSeconds)
	assert.Equal(t, 2, security.ScanCountInWindow)
	assert.Equal(t, "LOW", resp.Zones["gate"].CongestionLevel)
	assert.Equal(t, 5, resp.WindowMinutes)
}

// TestGetCongestion_503_StoreUnavailable verifies the store failure mapping.
func TestGetCongestion_503_StoreUnavailable(t *testing.T) {
	congestion := &mockCongestionProvider{
		compute: func(context.Context, time.Time) (domain.CongestionReport, error) {
			return domain.CongestionReport{}, fmt.Errorf("service.AggregatorService.Compute: %w", domain.ErrStoreUnavailable)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/congestion", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, congestion).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// TestExportCongestion_JSON verifies the default export is a flat JSON array
// sorted by zone.
func TestExportCongestion_JSON(t *testing.T) {
	congestion := &mockCongestionProvider{
		compute: func(context.Context, time.Time) (domain.CongestionReport, error) {
			return reportFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/congestion/export", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, congestion).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		Zone            string `json:"zone"`
		CongestionLevel string `json:"congestion_level"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "gate", rows[0].Zone, "rows sorted by zone")
	assert.Equal(t, "security", rows[1].Zone)
}

// TestExportCongestion_CSV verifies ?format=csv returns a header row plus
// one line per zone.
func TestExportCongestion_CSV(t *testing.T) {
	congestion := &mockCongestionProvider{
		compute: func(context.Context, time.Time) (domain.CongestionReport, error) {
			return reportFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/congestion/export?format=csv", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, congestion).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "zone,congestion_level,congestion_score,avg_dwell_time_seconds,scan_count_in_window", lines[0])
	assert.Equal(t, "gate,LOW,0.00,0.00,0", lines[1])
	assert.Equal(t, "security,MEDIUM,120.46,60.23,2", lines[2])
}
