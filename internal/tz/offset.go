// Package tz resolves location tokens to IANA time zones and computes the
// DST-aware hour offset between two zones at a given instant.
//
// Every function in this package degrades instead of failing: an unknown
// zone yields a zero offset, an unknown token yields a fallback zone.
package tz

import (
	"sync"
	"time"
	_ "time/tzdata" // embedded zone database so resolution works on bare hosts

	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
)

// locations memoizes time.LoadLocation, which re-reads zone data per call.
// *time.Location values are immutable, so sharing them is safe.
var locations sync.Map // zone id -> *time.Location

// Location returns the *time.Location for an IANA id. ok is false for an
// empty or unknown id.
func Location(id string) (*time.Location, bool) {
	if id == "" {
		return nil, false
	}
	if loc, ok := locations.Load(id); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, false
	}
	locations.Store(id, loc)
	return loc, true
}

// Valid reports whether id names a loadable zone. "Local" is rejected since
// it depends on the host rather than the trip.
func Valid(id string) bool {
	if id == "Local" {
		return false
	}
	_, ok := Location(id)
	return ok
}

// OffsetHours returns how many hours must be subtracted from a wall-clock
// time in zone a to get the wall-clock time in zone b at the same instant.
// Tokyo against New York in April is +13.
//
// It returns 0 when the ids are equal, when either is empty, or when either
// cannot be loaded.
func OffsetHours(instant time.Time, a, b string) float64 {
	if a == b || a == "" || b == "" {
		return 0
	}
	locA, okA := Location(a)
	locB, okB := Location(b)
	if !okA || !okB {
		return 0
	}
	_, secA := instant.In(locA).Zone()
	_, secB := instant.In(locB).Zone()
	return float64(secA-secB) / 3600
}

// OffsetOn is OffsetHours evaluated at noon of date in zone a, the instant
// the timeline uses for "the offset on this day".
func OffsetOn(date localtime.Date, a, b string) float64 {
	if a == b || a == "" || b == "" {
		return 0
	}
	locA, ok := Location(a)
	if !ok {
		return 0
	}
	return OffsetHours(date.In(locA), a, b)
}

type offsetKey struct {
	date localtime.Date
	a, b string
}

// OffsetCache memoizes OffsetOn for the lifetime of one projection.
// It is not safe for concurrent use; each invocation builds its own.
type OffsetCache struct {
	m map[offsetKey]float64
}

// NewOffsetCache returns an empty cache.
func NewOffsetCache() *OffsetCache {
	return &OffsetCache{m: make(map[offsetKey]float64)}
}

// On returns OffsetOn(date, a, b), computing it at most once per key.
// A nil cache computes directly.
func (c *OffsetCache) On(date localtime.Date, a, b string) float64 {
	if c == nil {
		return OffsetOn(date, a, b)
	}
	k := offsetKey{date: date, a: a, b: b}
	if v, ok := c.m[k]; ok {
		return v
	}
	v := OffsetOn(date, a, b)
	c.m[k] = v
	return v
}
