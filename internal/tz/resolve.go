package tz

import (
	"strings"

	"github.com/pkordes/perdiem-planner/backend/internal/airport"
)

// Context is the trip-level information a token is resolved against.
type Context struct {
	HomeCity string
	DestCity string
	HomeTZ   string
	DestTZ   string

	// Preferred is the caller's fallback when nothing matches. Empty means
	// fall back to HomeTZ.
	Preferred string
}

// Resolver maps location tokens (airport codes, place names, zone ids) to
// IANA zone ids.
type Resolver struct {
	airports airport.Directory
}

// NewResolver returns a Resolver backed by dir. A nil dir uses airport.Default.
func NewResolver(dir airport.Directory) *Resolver {
	if dir == nil {
		dir = airport.Default
	}
	return &Resolver{airports: dir}
}

// Resolve returns the zone for token. Tiers are tried in order and the first
// match wins:
//
//  1. a known 3-letter airport code
//  2. an explicit IANA zone id
//  3. token and home city contain one another (case-insensitive)
//  4. token and destination city contain one another
//  5. ctx.Preferred, else ctx.HomeTZ
//
// Tiers 3 and 4 are a low-confidence heuristic and only run when the exact
// tiers found nothing. The result is never empty as long as ctx.HomeTZ is set.
func (r *Resolver) Resolve(token string, ctx Context) string {
	token = strings.TrimSpace(token)

	if zone, ok := r.airports.Timezone(token); ok {
		return zone
	}
	if strings.Contains(token, "/") && Valid(token) {
		return token
	}
	if cityMatch(token, ctx.HomeCity) && ctx.HomeTZ != "" {
		return ctx.HomeTZ
	}
	if cityMatch(token, ctx.DestCity) && ctx.DestTZ != "" {
		return ctx.DestTZ
	}
	if ctx.Preferred != "" {
		return ctx.Preferred
	}
	return ctx.HomeTZ
}

// AirportCity returns the city of an airport code, if known.
func (r *Resolver) AirportCity(code string) (string, bool) {
	return r.airports.City(code)
}

// cityMatch reports whether either string contains the other, ignoring case.
// Empty strings never match; otherwise "" would match every label.
func cityMatch(token, city string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	city = strings.ToLower(strings.TrimSpace(city))
	if token == "" || city == "" {
		return false
	}
	return strings.Contains(city, token) || strings.Contains(token, city)
}
