package domain

import (
	"fmt"
	"time"
)

// CongestionLevel is the discrete classification of a zone's congestion
// score. It is a closed enumeration, not a free-form string, so switches
// over it stay exhaustive.
type CongestionLevel int

const (
	CongestionLow CongestionLevel = iota
	CongestionMedium
	CongestionHigh
)

// String returns the wire-level name of the level (LOW, MEDIUM, HIGH).
func (l CongestionLevel) String() string {
	switch l {
	case CongestionLow:
		return "LOW"
	case CongestionMedium:
		return "MEDIUM"
	case CongestionHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("CongestionLevel(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialize as their
// wire-level names inside JSON responses.
func (l CongestionLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ZoneCongestionSnapshot is the anonymized, per-zone output of one
// aggregation pass. It is purely derived from active scan histories and is
// recomputed on each pass, never persisted.
type ZoneCongestionSnapshot struct {
	Zone              Zone
	Level             CongestionLevel
	Score             float64
	AvgDwellSeconds   float64
	ScanCountInWindow int
}

// CongestionReport is the full result of one aggregation pass: one snapshot
// per zone (every configured zone is present even with zero activity), plus
// the computation time and the window the scan counts cover. It carries no
// token identifiers.
type CongestionReport struct {
	Zones         map[Zone]ZoneCongestionSnapshot
	ComputedAt    time.Time
	WindowMinutes int
}
