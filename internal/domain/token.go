// Package domain contains the core data types for the SURGE congestion API.
// This package has no business logic and is imported by every other internal
// package (store, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an ephemeral, unlinkable identifier for one anonymous carrier
// moving through the facility. It is immutable after creation. Validity is
// enforced entirely by the store's TTL: once the entry expires the token is
// invalid, with no sweep or explicit revocation step.
type Token struct {
	ID        uuid.UUID `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
