package domain

import "time"

// ScanEvent is one timestamped record of a token's presence in a zone.
// Events are stored JSON-encoded in the token's scan history, an ordered,
// timestamp-ascending list scoped to one token.
type ScanEvent struct {
	Zone      Zone      `json:"zone"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanStatus enumerates the success outcomes of recording a scan.
// Failure cases (unknown token, unknown zone, unreachable store) are
// sentinel errors, not statuses — see errors.go.
type ScanStatus int

const (
	// ScanRecorded means a new event was appended to the token's history.
	ScanRecorded ScanStatus = iota

	// ScanAlreadyInZone means the token's most recent event is already in
	// the requested zone; the history was left untouched.
	ScanAlreadyInZone
)

// ScanOutcome is the result of a successful Record call.
// For ScanRecorded, Timestamp is the time the new event was recorded.
// For ScanAlreadyInZone, Timestamp is the time of the existing tail event.
type ScanOutcome struct {
	Status    ScanStatus
	Zone      Zone
	Timestamp time.Time
}
