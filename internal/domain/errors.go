package domain

import "errors"

// ErrInvalidToken is returned when a scan references a token that is unknown
// or whose store entry has expired. Handlers should map this to HTTP 404.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrInvalidZone is returned when a scan names a zone outside the configured
// set. Handlers should map this to HTTP 400.
var ErrInvalidZone = errors.New("invalid zone")

// ErrStoreUnavailable is returned when the shared ephemeral store times out
// or the connection fails. It is propagated to the caller and never retried
// inside the core; retry policy belongs to the caller. Handlers should map
// this to HTTP 503.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrMalformedRecord marks a corrupt stored scan entry encountered during
// aggregation. Such entries are skipped and logged; they never abort the
// remainder of the aggregation pass, so this error surfaces in logs rather
// than in return values.
var ErrMalformedRecord = errors.New("malformed scan record")
