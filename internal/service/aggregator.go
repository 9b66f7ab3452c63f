package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/store"
)

// maxDwellSeconds bounds a believable stay in one zone. Adjacent scans
// further apart than this are clock anomalies or abandoned tokens and are
// discarded, never clamped.
const maxDwellSeconds = 7200

// AggregatorService computes anonymized per-zone congestion snapshots from
// the scan histories of all active tokens. Token identity is discarded
// during aggregation, so the output is structurally anonymous.
type AggregatorService struct {
	store      store.Store
	zones      domain.ZoneSet
	window     time.Duration
	classifier *Classifier
	log        *slog.Logger
}

// NewAggregatorService constructs an AggregatorService. window is the
// trailing interval scan counts are measured over.
func NewAggregatorService(st store.Store, zones domain.ZoneSet, window time.Duration, cl *Classifier, log *slog.Logger) *AggregatorService {
	return &AggregatorService{store: st, zones: zones, window: window, classifier: cl, log: log}
}

// Compute runs one full aggregation pass over all active tokens as of now.
//
// For each token's history, every adjacent event pair contributes a dwell
// duration to the zone departed when 0 < d < 7200s, and every event inside
// [now-window, now] counts toward its zone's scan rate. Per zone:
// score = scanCount × avgDwell, classified by the configured thresholds.
//
// The result always contains one snapshot per configured zone, plus any
// zone observed in the data. Each token's history is read in a single store
// call, so it is seen atomically; slight staleness across tokens is
// accepted — the output is an eventually-consistent heatmap.
func (s *AggregatorService) Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error) {
	ids, err := s.activeTokenIDs(ctx)
	if err != nil {
		return domain.CongestionReport{}, fmt.Errorf("service.AggregatorService.Compute: %w", err)
	}

	cutoff := now.Add(-s.window)
	dwells := make(map[domain.Zone][]float64)
	counts := make(map[domain.Zone]int)

	for _, id := range ids {
		events, err := s.history(ctx, id)
		if err != nil {
			return domain.CongestionReport{}, fmt.Errorf("service.AggregatorService.Compute: %w", err)
		}

		for i, ev := range events {
			// The window is inclusive on both ends. The most recent
			// event counts even though it has no successor yet.
			if !ev.Timestamp.Before(cutoff) && !ev.Timestamp.After(now) {
				counts[ev.Zone]++
			}
			if i+1 < len(events) {
				d := events[i+1].Timestamp.Sub(ev.Timestamp).Seconds()
				if d > 0 && d < maxDwellSeconds {
					dwells[ev.Zone] = append(dwells[ev.Zone], d)
				}
			}
		}
	}

	// Zone universe: the configured set plus anything observed in the data.
	universe := make(map[domain.Zone]struct{}, len(s.zones))
	for z := range s.zones {
		universe[z] = struct{}{}
	}
	for z := range dwells {
		universe[z] = struct{}{}
	}
	for z := range counts {
		universe[z] = struct{}{}
	}

	report := domain.CongestionReport{
		Zones:         make(map[domain.Zone]domain.ZoneCongestionSnapshot, len(universe)),
		ComputedAt:    now,
		WindowMinutes: int(s.window / time.Minute),
	}
	for z := range universe {
		avg := mean(dwells[z])
		count := counts[z]
		score := float64(count) * avg
		report.Zones[z] = domain.ZoneCongestionSnapshot{
			Zone:              z,
			Level:             s.classifier.Classify(score),
			Score:             score,
			AvgDwellSeconds:   avg,
			ScanCountInWindow: count,
		}
	}
	return report, nil
}

// activeTokenIDs enumerates the liveness keys under the surge prefix and
// strips them back to token IDs, skipping the scan-list keys.
func (s *AggregatorService) activeTokenIDs(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if id, ok := tokenIDFromKey(k); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// history reads one token's scan list and decodes it into events sorted by
// timestamp ascending. Corrupt entries are skipped and logged; they never
// abort the pass.
func (s *AggregatorService) history(ctx context.Context, id string) ([]domain.ScanEvent, error) {
	items, err := s.store.Range(ctx, scansKey(id))
	if err != nil {
		return nil, err
	}

	events := make([]domain.ScanEvent, 0, len(items))
	for _, raw := range items {
		var ev domain.ScanEvent
		if err := json.Unmarshal([]byte(raw), &ev); err != nil || ev.Zone == "" || ev.Timestamp.IsZero() {
			s.log.Warn("skipping scan record", "error", domain.ErrMalformedRecord)
			continue
		}
		events = append(events, ev)
	}

	// The store preserves append order, but sort anyway: the dwell
	// computation is only meaningful on a timestamp-ascending sequence.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
