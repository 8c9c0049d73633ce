package timeline

import (
	"errors"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
)

// Projection is the render-ready result of Project.
type Projection struct {
	Events    []domain.TimelineEvent `json:"events"`
	Midnights []domain.MidnightMark  `json:"midnights"`

	// Skipped lists the events left out of Events and why. Out-of-window
	// flights are listed too; they stay in the snapshot.
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Skipped names an event that could not be placed on the axis.
type Skipped struct {
	Kind   domain.EventKind `json:"kind"`
	Key    string           `json:"key"`
	Reason string           `json:"reason"`
}

// Project places every flight segment, hotel stay and transport leg of snap
// on the home axis and builds the midnight grid.
//
// Events come grouped by kind (flights, hotels, transport) and in source
// order within a group: outbound before return segments, trip-level legs
// before legacy per-day legs. Project never modifies snap, returns equal
// results for equal input and keeps no state between calls. A snapshot
// whose trip has no days projects to an empty Projection.
func Project(snap domain.Snapshot, opts Options) Projection {
	out := Projection{
		Events:    []domain.TimelineEvent{},
		Midnights: []domain.MidnightMark{},
	}
	n, ok := NewNormalizer(snap.Trip, opts)
	if !ok {
		return out
	}
	log := opts.logger()

	add := func(kind domain.EventKind, key string, ev domain.TimelineEvent, err error) {
		if err != nil {
			log.Debug("timeline: event skipped", "kind", kind, "key", key, "error", err)
			out.Skipped = append(out.Skipped, Skipped{Kind: kind, Key: key, Reason: reason(err)})
			return
		}
		out.Events = append(out.Events, ev)
	}

	for fi, f := range snap.Flights {
		for _, list := range []domain.FlightList{domain.FlightOutbound, domain.FlightReturn} {
			for si, seg := range f.Segments(list) {
				ev, err := n.Flight(fi, list, si, seg)
				add(domain.EventFlight, FlightKey(fi, list, si, seg.ID), ev, err)
			}
		}
	}
	for hi, h := range snap.Hotels {
		ev, err := n.Hotel(hi, h)
		add(domain.EventHotel, HotelKey(hi, h.ID), ev, err)
	}
	for li, leg := range snap.Transport {
		ev, err := n.Transport(li, -1, leg)
		add(domain.EventTransport, TransportKey(li, -1, leg.ID), ev, err)
	}
	for di, day := range snap.Trip.Days {
		for li, leg := range day.Transport {
			ev, err := n.Transport(li, di, leg)
			add(domain.EventTransport, TransportKey(li, di, leg.ID), ev, err)
		}
	}

	out.Midnights = MidnightGrid(snap.Trip, n.offsets)
	return out
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrOutOfWindow):
		return "out_of_window"
	case errors.Is(err, ErrInverted):
		return "inverted"
	default:
		return "unparseable"
	}
}
