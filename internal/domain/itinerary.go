package domain

import "strings"

// FlightSegment is one scheduled flight leg. All date, time and port fields
// are the raw local strings the traveller entered; they are normalized on
// every projection and never stored pre-normalized.
type FlightSegment struct {
	ID           string `json:"id,omitempty"`
	Airline      string `json:"airline,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"`
	Seat         string `json:"seat,omitempty"`

	DepPort string `json:"dep_port"`
	ArrPort string `json:"arr_port"`
	DepDate string `json:"dep_date"`
	ArrDate string `json:"arr_date,omitempty"`
	DepTime string `json:"dep_time"`
	ArrTime string `json:"arr_time"`
}

// FlightList names one of a booking's two ordered segment lists.
type FlightList string

const (
	FlightOutbound FlightList = "outbound"
	FlightReturn   FlightList = "return"
)

// Flight is a round- or multi-city booking. Within each list, a segment
// should depart after the previous one arrives; that is advisory only.
type Flight struct {
	ID       string          `json:"id,omitempty"`
	Outbound []FlightSegment `json:"outbound,omitempty"`
	Return   []FlightSegment `json:"return,omitempty"`
	Cost     *float64        `json:"cost,omitempty"`
	Currency string          `json:"currency,omitempty"`
}

// Segments returns the list named by l.
func (f Flight) Segments(l FlightList) []FlightSegment {
	if l == FlightReturn {
		return f.Return
	}
	return f.Outbound
}

// Clone returns a deep copy of f.
func (f Flight) Clone() Flight {
	cp := f
	cp.Outbound = append([]FlightSegment(nil), f.Outbound...)
	cp.Return = append([]FlightSegment(nil), f.Return...)
	cp.Cost = cloneFloat(f.Cost)
	return cp
}

// HotelCostMode says which of a Hotel's cost fields is authoritative.
type HotelCostMode string

const (
	HotelCostNightly  HotelCostMode = "nightly"
	HotelCostTotal    HotelCostMode = "total"
	HotelCostPerNight HotelCostMode = "per_night"
)

// Hotel is a lodging stay. Check-in and check-out are ISO dates and local
// times that are always read in the destination zone.
type Hotel struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name,omitempty"`
	CheckIn      string        `json:"check_in"`
	CheckOut     string        `json:"check_out"`
	CheckInTime  string        `json:"check_in_time,omitempty"`
	CheckOutTime string        `json:"check_out_time,omitempty"`
	CostMode     HotelCostMode `json:"cost_mode,omitempty"`
	Nightly      *float64      `json:"nightly,omitempty"`
	Total        *float64      `json:"total,omitempty"`
	PerNight     []float64     `json:"per_night,omitempty"`
	Currency     string        `json:"currency,omitempty"`
}

// Cost returns the stay's total cost for nights nights under its cost mode.
// ok is false when the mode's field is unset.
func (h Hotel) Cost(nights int) (float64, bool) {
	switch h.CostMode {
	case HotelCostTotal:
		if h.Total == nil {
			return 0, false
		}
		return *h.Total, true
	case HotelCostPerNight:
		if len(h.PerNight) == 0 {
			return 0, false
		}
		var sum float64
		for _, v := range h.PerNight {
			sum += v
		}
		return sum, true
	default:
		if h.Nightly == nil {
			return 0, false
		}
		return *h.Nightly * float64(nights), true
	}
}

// Clone returns a deep copy of h.
func (h Hotel) Clone() Hotel {
	cp := h
	cp.Nightly = cloneFloat(h.Nightly)
	cp.Total = cloneFloat(h.Total)
	cp.PerNight = append([]float64(nil), h.PerNight...)
	return cp
}

// Side is the clock a transport leg's local time is read on.
type Side string

const (
	SideHome Side = "home"
	SideDest Side = "dest"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool { return s == SideHome || s == SideDest }

// Well-known place tokens for transport endpoints. Anything else is free text.
const (
	PlaceHome    = "home"
	PlaceAirport = "airport"
	PlaceHotel   = "hotel"
	PlaceWork    = "work"
)

// PlaceKind returns the well-known token a place names, or "" for free text.
func PlaceKind(token string) string {
	switch t := strings.ToLower(strings.TrimSpace(token)); t {
	case PlaceHome, PlaceAirport, PlaceHotel, PlaceWork:
		return t
	default:
		return ""
	}
}

// TransportLeg is a point-to-point ground movement. Side is decided once
// when the leg is created and stored; it is not re-derived as flights change.
type TransportLeg struct {
	ID          string   `json:"id,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	DurationMin *int     `json:"duration_min,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Side        Side     `json:"side"`
}

// Clone returns a deep copy of l.
func (l TransportLeg) Clone() TransportLeg {
	cp := l
	cp.Cost = cloneFloat(l.Cost)
	if l.DurationMin != nil {
		v := *l.DurationMin
		cp.DurationMin = &v
	}
	return cp
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
