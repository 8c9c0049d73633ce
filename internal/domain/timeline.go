package domain

import "github.com/pkordes/perdiem-planner/backend/internal/localtime"

// EventKind discriminates TimelineEvent.
type EventKind string

const (
	EventFlight    EventKind = "flight"
	EventHotel     EventKind = "hotel"
	EventTransport EventKind = "transport"
)

// TimelineEvent is one positioned block on the home-zone axis. Start and End
// are hours from local midnight of the trip's first day in the home zone.
// Exactly one of Flight, Hotel and Transport is set, matching Kind.
//
// Events are derived on every projection and never persisted. Key is stable
// across projections of the same snapshot so callers can diff results.
type TimelineEvent struct {
	Kind  EventKind `json:"kind"`
	Key   string    `json:"key"`
	Start float64   `json:"start"`
	End   float64   `json:"end"`

	Flight    *FlightEvent    `json:"flight,omitempty"`
	Hotel     *HotelEvent     `json:"hotel,omitempty"`
	Transport *TransportEvent `json:"transport,omitempty"`
}

// Duration returns End - Start in hours.
func (e TimelineEvent) Duration() float64 { return e.End - e.Start }

// FlightEvent is a projected flight segment.
type FlightEvent struct {
	FlightIndex  int           `json:"flight_index"`
	List         FlightList    `json:"list"`
	SegmentIndex int           `json:"segment_index"`
	Segment      FlightSegment `json:"segment"`
	DepZone      string        `json:"dep_zone"`
	ArrZone      string        `json:"arr_zone"`
	DepCity      string        `json:"dep_city,omitempty"`
	ArrCity      string        `json:"arr_city,omitempty"`

	// Overnight is set when the arrival was rolled forward a day because it
	// projected before the departure.
	Overnight bool `json:"overnight,omitempty"`
}

// HotelEvent is a projected hotel stay.
type HotelEvent struct {
	HotelIndex int    `json:"hotel_index"`
	Hotel      Hotel  `json:"hotel"`
	Zone       string `json:"zone"`
	Nights     int    `json:"nights"`
}

// TransportEvent is a projected ground transport leg. DayIndex is -1 for legs
// in the trip-level list and the owning day's index for legacy nested legs.
type TransportEvent struct {
	LegIndex int          `json:"leg_index"`
	DayIndex int          `json:"day_index"`
	Leg      TransportLeg `json:"leg"`
	Zone     string       `json:"zone"`
}

// MidnightMark is a date boundary on the home axis for one of the two clocks.
type MidnightMark struct {
	Hours float64        `json:"hours"`
	Zone  Side           `json:"zone"`
	Label string         `json:"label"`
	Date  localtime.Date `json:"date"`
}
