// Package service contains the business logic for the SURGE congestion API:
// the token lifecycle, the per-token scan state machine, the windowed
// aggregation pass, and score classification. Services depend on the store
// interface, not a concrete implementation.
package service

import "strings"

// Key layout in the shared store:
//
//	surge:{id}        -> "active", TTL = token lifetime
//	surge:{id}:scans  -> list of JSON scan events, TTL pinned to the token's
const (
	keyPrefix   = "surge:"
	scansSuffix = ":scans"
)

// tokenKey returns the store key holding a token's liveness entry.
func tokenKey(id string) string {
	return keyPrefix + id
}

// scansKey returns the store key holding a token's scan history list.
func scansKey(id string) string {
	return keyPrefix + id + scansSuffix
}

// tokenIDFromKey extracts the token ID from a liveness key, and reports
// whether the key is a liveness key at all (scan-list keys are not).
func tokenIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || strings.HasSuffix(key, scansSuffix) {
		return "", false
	}
	return strings.TrimPrefix(key, keyPrefix), true
}
