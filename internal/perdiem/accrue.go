// Package perdiem computes a day's claimable meals and incidentals (M&IE)
// and looks up per-diem rates by location and date.
package perdiem

import "github.com/pkordes/perdiem-planner/backend/internal/domain"

// Ratios splits a base M&IE rate into its four components. The fractions of
// each table sum to 1.
type Ratios struct {
	Breakfast   float64
	Lunch       float64
	Dinner      float64
	Incidentals float64
}

// Fixed component ratios for domestic and foreign rates.
var (
	DomesticRatios = Ratios{Breakfast: 0.23, Lunch: 0.26, Dinner: 0.44, Incidentals: 0.07}
	ForeignRatios  = Ratios{Breakfast: 0.15, Lunch: 0.25, Dinner: 0.35, Incidentals: 0.25}
)

// RatiosFor returns the ratio table for a domestic or foreign rate.
func RatiosFor(foreign bool) Ratios {
	if foreign {
		return ForeignRatios
	}
	return DomesticRatios
}

// Meals holds an amount per M&IE component.
type Meals struct {
	Breakfast   float64 `json:"breakfast"`
	Lunch       float64 `json:"lunch"`
	Dinner      float64 `json:"dinner"`
	Incidentals float64 `json:"incidentals"`
}

// Accrual is one day's M&IE. PerMeal carries every component scaled by
// Percent, claimed or not; Total sums only the claimed ones.
type Accrual struct {
	Total   float64 `json:"total"`
	Percent int     `json:"percent"`
	PerMeal Meals   `json:"per_meal"`
}

// Travel-day percentages.
const (
	FullDay    = 100
	TravelDay  = 75
	minTripLen = 2
)

// PercentFor returns the share of the rate claimable on day dayIndex of a
// trip of totalDays days: 75 on the first and last day of a multi-day trip,
// 100 otherwise.
func PercentFor(dayIndex, totalDays int) int {
	if totalDays >= minTripLen && (dayIndex == 0 || dayIndex == totalDays-1) {
		return TravelDay
	}
	return FullDay
}

// Accrue computes one day's M&IE from its base rate and meal flags. A meal
// whose flag is false is still shown in PerMeal but left out of Total.
func Accrue(dayIndex, totalDays int, baseMIE float64, meals domain.MealFlags, foreign bool) Accrual {
	pct := PercentFor(dayIndex, totalDays)
	r := RatiosFor(foreign)
	scale := baseMIE * float64(pct) / 100

	per := Meals{
		Breakfast:   r.Breakfast * scale,
		Lunch:       r.Lunch * scale,
		Dinner:      r.Dinner * scale,
		Incidentals: r.Incidentals * scale,
	}

	var total float64
	if meals.Breakfast {
		total += per.Breakfast
	}
	if meals.Lunch {
		total += per.Lunch
	}
	if meals.Dinner {
		total += per.Dinner
	}
	if meals.Incidentals {
		total += per.Incidentals
	}
	return Accrual{Total: total, Percent: pct, PerMeal: per}
}
