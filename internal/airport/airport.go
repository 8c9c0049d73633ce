// Package airport is the static airport lookup table: IATA code to IANA
// time zone and city name. It backs the first tier of the timezone resolver.
package airport

import "strings"

// Directory answers static questions about airports by IATA code.
// Codes are matched case-insensitively. ok is false for unknown codes.
type Directory interface {
	Timezone(code string) (zone string, ok bool)
	City(code string) (city string, ok bool)
}

// Airport is one row of the table.
type Airport struct {
	Code string
	City string
	Zone string
}

// Table is an in-memory Directory. The zero value is an empty table.
type Table map[string]Airport

// NewTable builds a Table from rows, keyed by upper-case code.
func NewTable(rows []Airport) Table {
	t := make(Table, len(rows))
	for _, a := range rows {
		t[strings.ToUpper(a.Code)] = a
	}
	return t
}

// Lookup returns the row for code.
func (t Table) Lookup(code string) (Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return Airport{}, false
	}
	a, ok := t[code]
	return a, ok
}

func (t Table) Timezone(code string) (string, bool) {
	a, ok := t.Lookup(code)
	return a.Zone, ok
}

func (t Table) City(code string) (string, bool) {
	a, ok := t.Lookup(code)
	return a.City, ok
}

// Default is the built-in table of major passenger airports.
var Default = NewTable(builtin)
