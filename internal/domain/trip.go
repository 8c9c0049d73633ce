// Package domain contains the core data types for the per-diem planner.
// It holds plain data and the invariants of the Trip aggregate; time-zone
// math lives in the tz and timeline packages.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
)

// DefaultCurrency is the reporting currency of a trip that does not set one.
const DefaultCurrency = "USD"

// Trip is the root aggregate. Days is contiguous and ascending, with at least
// one entry; Validate enforces this. A Trip is passed by value through the
// core and never mutated in place by it.
type Trip struct {
	Name     string `json:"name"`
	Days     []Day  `json:"days"`
	HomeTZ   string `json:"home_tz"`
	DestTZ   string `json:"dest_tz"`
	HomeCity string `json:"home_city,omitempty"`
	DestCity string `json:"dest_city,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// MealFlags records which M&IE components the traveller claims on a day.
// A false flag means the meal is not claimed, e.g. because it was provided.
type MealFlags struct {
	Breakfast   bool `json:"breakfast"`
	Lunch       bool `json:"lunch"`
	Dinner      bool `json:"dinner"`
	Incidentals bool `json:"incidentals"`
}

// AllMeals returns flags with every component claimed.
func AllMeals() MealFlags {
	return MealFlags{Breakfast: true, Lunch: true, Dinner: true, Incidentals: true}
}

// Lodging holds one night's lodging parameters. Rate and Tax are in
// Currency. Cap is the per-diem lodging ceiling in the trip currency, and
// OverageCapPercent is how far above Cap a rate may be claimed.
type Lodging struct {
	Rate              *float64 `json:"rate,omitempty"`
	Tax               *float64 `json:"tax,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	Cap               *float64 `json:"cap,omitempty"`
	OverageCapPercent float64  `json:"overage_cap_percent,omitempty"`
}

// Day is one calendar date of the trip.
type Day struct {
	Date           localtime.Date `json:"date"`
	Location       string         `json:"location,omitempty"`
	BaseMIE        *float64       `json:"base_mie,omitempty"`
	Meals          MealFlags      `json:"meals"`
	Lodging        Lodging        `json:"lodging"`
	ForeignMIE     bool           `json:"foreign_mie,omitempty"`
	ForeignLodging bool           `json:"foreign_lodging,omitempty"`

	// Transport holds legs nested under the day by older clients.
	//
	// Deprecated: legs belong in Snapshot.Transport. Nested legs are still
	// projected; a leg with no date takes the day's date.
	Transport []TransportLeg `json:"transport,omitempty"`
}

// TotalDays is the number of calendar days in the trip.
func (t Trip) TotalDays() int { return len(t.Days) }

// Start returns the first day's date. ok is false for a trip with no days.
func (t Trip) Start() (localtime.Date, bool) {
	if len(t.Days) == 0 {
		return localtime.Date{}, false
	}
	return t.Days[0].Date, true
}

// End returns the last day's date. ok is false for a trip with no days.
func (t Trip) End() (localtime.Date, bool) {
	if len(t.Days) == 0 {
		return localtime.Date{}, false
	}
	return t.Days[len(t.Days)-1].Date, true
}

// DayIndex returns the index date would have in Days. It may be negative or
// past the end for dates outside the trip.
func (t Trip) DayIndex(date localtime.Date) int {
	start, ok := t.Start()
	if !ok {
		return 0
	}
	return date.DaysSince(start)
}

// DayFor returns the day for date and its index.
func (t Trip) DayFor(date localtime.Date) (Day, int, bool) {
	i := t.DayIndex(date)
	if i < 0 || i >= len(t.Days) || !t.Days[i].Date.Equal(date) {
		return Day{}, -1, false
	}
	return t.Days[i], i, true
}

// ReportingCurrency returns Currency, defaulting to DefaultCurrency.
func (t Trip) ReportingCurrency() string {
	if c := strings.TrimSpace(t.Currency); c != "" {
		return strings.ToUpper(c)
	}
	return DefaultCurrency
}

// Validate checks the Days invariant: at least one day, ascending, no gaps
// and no duplicates. Errors wrap ErrValidation.
func (t Trip) Validate() error {
	if len(t.Days) == 0 {
		return fmt.Errorf("%w: trip must have at least one day", ErrValidation)
	}
	for i, d := range t.Days {
		if d.Date.IsZero() {
			return fmt.Errorf("%w: day %d has no date", ErrValidation, i)
		}
		if i == 0 {
			continue
		}
		prev := t.Days[i-1].Date
		if want := prev.AddDays(1); !d.Date.Equal(want) {
			return fmt.Errorf("%w: day %d is %s, expected %s (days must be contiguous and ascending)",
				ErrValidation, i, d.Date, want)
		}
	}
	return nil
}

// WithDateRange returns a copy of t whose days cover start..end inclusive.
// Days already present keep their state; new days take DestCity as their
// location and claim every meal. Days outside the range are dropped.
func (t Trip) WithDateRange(start, end localtime.Date) (Trip, error) {
	if start.IsZero() || end.IsZero() {
		return Trip{}, fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if end.Before(start) {
		return Trip{}, fmt.Errorf("%w: end date must not be before start date", ErrValidation)
	}

	existing := make(map[localtime.Date]Day, len(t.Days))
	for _, d := range t.Days {
		existing[d.Date] = d
	}

	out := t.Clone()
	n := end.DaysSince(start) + 1
	out.Days = make([]Day, 0, n)
	for i := 0; i < n; i++ {
		date := start.AddDays(i)
		if d, ok := existing[date]; ok {
			out.Days = append(out.Days, cloneDay(d))
			continue
		}
		out.Days = append(out.Days, Day{
			Date:     date,
			Location: t.DestCity,
			Meals:    AllMeals(),
		})
	}
	return out, nil
}

// Clone returns a deep copy of t.
func (t Trip) Clone() Trip {
	cp := t
	if t.Days != nil {
		cp.Days = make([]Day, len(t.Days))
		for i, d := range t.Days {
			cp.Days[i] = cloneDay(d)
		}
	}
	return cp
}

func cloneDay(d Day) Day {
	cp := d
	cp.BaseMIE = cloneFloat(d.BaseMIE)
	cp.Lodging.Rate = cloneFloat(d.Lodging.Rate)
	cp.Lodging.Tax = cloneFloat(d.Lodging.Tax)
	cp.Lodging.Cap = cloneFloat(d.Lodging.Cap)
	if d.Transport != nil {
		cp.Transport = make([]TransportLeg, len(d.Transport))
		for i, l := range d.Transport {
			cp.Transport[i] = l.Clone()
		}
	}
	return cp
}

// StoredTrip is a snapshot as persisted, with the store's bookkeeping.
type StoredTrip struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Snapshot  Snapshot  `json:"snapshot"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
