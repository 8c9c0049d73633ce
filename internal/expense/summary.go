// Package expense totals a trip's reimbursable costs in its reporting
// currency: per-day M&IE, capped lodging, flights, hotel bookings and
// ground transport.
package expense

import (
	"fmt"

	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/perdiem"
)

// DaySummary is the claim for one trip day. MIE is nil when the day has no
// base rate; Lodging is nil when no lodging is claimable. Neither is ever a
// stand-in zero.
type DaySummary struct {
	Date     localtime.Date   `json:"date"`
	Location string           `json:"location,omitempty"`
	Percent  int              `json:"percent"`
	Foreign  bool             `json:"foreign,omitempty"`
	MIE      *perdiem.Accrual `json:"mie,omitempty"`
	Lodging  *float64         `json:"lodging,omitempty"`
}

// Unconverted is an amount left out of the totals because its currency could
// not be converted.
type Unconverted struct {
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Summary is a trip's expense report. All amounts are in Currency.
// HotelsBooked is what the stays cost as booked and is informational;
// Total counts lodging through the capped per-day claim instead.
type Summary struct {
	Trip         string        `json:"trip"`
	Currency     string        `json:"currency"`
	Days         []DaySummary  `json:"days"`
	MIE          float64       `json:"mie_total"`
	Lodging      float64       `json:"lodging_total"`
	Flights      float64       `json:"flights_total"`
	HotelsBooked float64       `json:"hotels_booked_total"`
	Transport    float64       `json:"transport_total"`
	Total        float64       `json:"total"`
	MissingMIE   int           `json:"missing_mie_days"`
	Unconverted  []Unconverted `json:"unconverted,omitempty"`
}

// Summarize builds the expense report for snap, converting every amount to
// the trip's reporting currency with fx. Lodging is claimed for each night,
// so never on the last day.
func Summarize(snap domain.Snapshot, fx currency.Rates) Summary {
	trip := snap.Trip
	s := &summarizer{fx: fx, ccy: trip.ReportingCurrency()}
	out := Summary{
		Trip:     trip.Name,
		Currency: s.ccy,
		Days:     make([]DaySummary, 0, len(trip.Days)),
	}

	total := trip.TotalDays()
	for i, d := range trip.Days {
		ds := DaySummary{
			Date:     d.Date,
			Location: d.Location,
			Percent:  perdiem.PercentFor(i, total),
			Foreign:  d.ForeignMIE,
		}
		if d.BaseMIE != nil {
			a := perdiem.Accrue(i, total, *d.BaseMIE, d.Meals, d.ForeignMIE)
			ds.MIE = &a
			out.MIE += a.Total
		} else {
			out.MissingMIE++
		}
		if i < total-1 {
			if v, ok := s.lodging(d); ok {
				ds.Lodging = &v
				out.Lodging += v
			}
		}
		out.Days = append(out.Days, ds)
	}

	for fi, f := range snap.Flights {
		if f.Cost != nil {
			out.Flights += s.add(fmt.Sprintf("flight %d", fi+1), *f.Cost, f.Currency)
		}
	}

	refYear := 0
	if start, ok := trip.Start(); ok {
		refYear = start.Year()
	}
	for hi, h := range snap.Hotels {
		if cost, ok := h.Cost(nights(h, refYear)); ok {
			out.HotelsBooked += s.add(fmt.Sprintf("hotel %d", hi+1), cost, h.Currency)
		}
	}

	for li, l := range snap.Transport {
		if l.Cost != nil {
			out.Transport += s.add(fmt.Sprintf("transport %d", li+1), *l.Cost, l.Currency)
		}
	}
	for di, d := range trip.Days {
		for li, l := range d.Transport {
			if l.Cost != nil {
				out.Transport += s.add(fmt.Sprintf("day %d transport %d", di+1, li+1), *l.Cost, l.Currency)
			}
		}
	}

	out.Total = out.MIE + out.Lodging + out.Flights + out.Transport
	out.Unconverted = s.unconverted
	return out
}

type summarizer struct {
	fx          currency.Rates
	ccy         string
	unconverted []Unconverted
}

// add converts amount to the report currency. Amounts that cannot be
// converted are recorded and contribute nothing.
func (s *summarizer) add(item string, amount float64, ccy string) float64 {
	if ccy == "" {
		ccy = s.ccy
	}
	v, err := currency.Convert(amount, ccy, s.ccy, s.fx)
	if err != nil {
		s.unconverted = append(s.unconverted, Unconverted{Item: item, Amount: amount, Currency: ccy})
		return 0
	}
	return v
}

// lodging returns the claimable lodging for one night: the rate, capped at
// Cap plus the allowed overage, plus tax.
func (s *summarizer) lodging(d domain.Day) (float64, bool) {
	l := d.Lodging
	if l.Rate == nil {
		return 0, false
	}
	ccy := l.Currency
	if ccy == "" {
		ccy = s.ccy
	}
	item := "lodging " + d.Date.String()

	rate, err := currency.Convert(*l.Rate, ccy, s.ccy, s.fx)
	if err != nil {
		s.unconverted = append(s.unconverted, Unconverted{Item: item, Amount: *l.Rate, Currency: ccy})
		return 0, false
	}
	if l.Cap != nil {
		rate = min(rate, *l.Cap*(1+l.OverageCapPercent/100))
	}
	if l.Tax != nil {
		tax, err := currency.Convert(*l.Tax, ccy, s.ccy, s.fx)
		if err != nil {
			s.unconverted = append(s.unconverted, Unconverted{Item: item + " tax", Amount: *l.Tax, Currency: ccy})
		} else {
			rate += tax
		}
	}
	return rate, true
}

func nights(h domain.Hotel, refYear int) int {
	in, ok1 := localtime.ParseDate(h.CheckIn, refYear)
	out, ok2 := localtime.ParseDate(h.CheckOut, refYear)
	if !ok1 || !ok2 {
		return 0
	}
	return max(out.DaysSince(in), 0)
}
