package domain

import "sort"

// Zone is a named physical area from the configured set. Zones are
// referenced by value and never created or destroyed by the core.
type Zone string

// ZoneSet is the fixed set of zones scan events are validated against.
// It is built once from configuration and never mutated afterwards.
type ZoneSet map[Zone]struct{}

// NewZoneSet builds a ZoneSet from configured zone names.
func NewZoneSet(names []string) ZoneSet {
	set := make(ZoneSet, len(names))
	for _, n := range names {
		set[Zone(n)] = struct{}{}
	}
	return set
}

// Contains reports whether z is a member of the configured set.
func (s ZoneSet) Contains(z Zone) bool {
	_, ok := s[z]
	return ok
}

// Zones returns the members sorted by name, for deterministic iteration.
func (s ZoneSet) Zones() []Zone {
	zones := make([]Zone, 0, len(s))
	for z := range s {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}
