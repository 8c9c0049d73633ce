// Package timeline projects a trip's flights, hotel stays and ground legs
// onto one continuous axis measured in hours from local midnight of the
// first trip day in the home zone, and builds the midnight gridlines of both
// clocks along that axis.
//
// Everything here is a pure function of its inputs. A projection owns its
// intermediate state, so independent calls may run concurrently.
package timeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/tz"
)

// ErrUnparseable is wrapped by normalizer errors for a date or time string
// that matches no accepted form.
var ErrUnparseable = errors.New("unparseable local value")

// ErrOutOfWindow is wrapped by normalizer errors for a flight segment that
// lies entirely outside the trip span plus one day of slack on each side.
var ErrOutOfWindow = errors.New("outside trip window")

// ErrInverted is wrapped when a hotel's check-out projects before its check-in.
var ErrInverted = errors.New("ends before it starts")

// Hotel check-in and check-out times used when the stay leaves them blank.
const (
	DefaultCheckIn  = 14.0
	DefaultCheckOut = 11.0
)

// defaultLegMinutes is the length of a transport leg with no end time and
// no duration.
const defaultLegMinutes = 30

// slackHours is how far outside the trip span a flight may sit and still be
// projected.
const slackHours = 24

// Options configures a projection. The zero value is ready to use.
type Options struct {
	// Resolver maps airport codes and place names to zones. Nil uses the
	// built-in airport table.
	Resolver *tz.Resolver

	// Logger receives a debug line for every skipped event. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) resolver() *tz.Resolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return tz.NewResolver(nil)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Normalizer converts single events of one trip into home-axis coordinates.
// It is built per projection and is not safe for concurrent use.
type Normalizer struct {
	trip       domain.Trip
	start      localtime.Date
	totalHours float64
	ctx        tz.Context
	resolver   *tz.Resolver
	offsets    *tz.OffsetCache
}

// NewNormalizer returns a Normalizer for trip. ok is false for a trip with no
// days, which has no axis to project onto.
func NewNormalizer(trip domain.Trip, opts Options) (*Normalizer, bool) {
	start, ok := trip.Start()
	if !ok {
		return nil, false
	}
	return &Normalizer{
		trip:       trip,
		start:      start,
		totalHours: float64(trip.TotalDays() * 24),
		ctx:        ContextOf(trip),
		resolver:   opts.resolver(),
		offsets:    tz.NewOffsetCache(),
	}, true
}

// ContextOf returns the resolver context for trip.
func ContextOf(trip domain.Trip) tz.Context {
	return tz.Context{
		HomeCity: trip.HomeCity,
		DestCity: trip.DestCity,
		HomeTZ:   trip.HomeTZ,
		DestTZ:   trip.DestTZ,
	}
}

// position places a local date and hour of day in zone on the home axis.
func (n *Normalizer) position(date localtime.Date, hour float64, zone string) float64 {
	day := date.DaysSince(n.start)
	return float64(day*24) + hour - n.offsets.On(date, zone, n.trip.HomeTZ)
}

func (n *Normalizer) parseDate(field, text string) (localtime.Date, error) {
	d, ok := localtime.ParseDate(text, n.start.Year())
	if !ok {
		return localtime.Date{}, fmt.Errorf("%w: %s %q", ErrUnparseable, field, text)
	}
	return d, nil
}

func parseTime(field, text string) (float64, error) {
	h, ok := localtime.ParseTimeOfDay(text)
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrUnparseable, field, text)
	}
	return h, nil
}

// Flight projects one flight segment. Port codes resolve through the
// resolver with the destination zone as the fallback. An arrival that
// projects before its departure is moved forward one day.
func (n *Normalizer) Flight(flightIndex int, list domain.FlightList, segIndex int, seg domain.FlightSegment) (domain.TimelineEvent, error) {
	ev, err := n.flight(flightIndex, list, segIndex, seg)
	if err != nil {
		return ev, err
	}
	if ev.End < -slackHours || ev.Start > n.totalHours+slackHours {
		return ev, fmt.Errorf("%w: %.1fh..%.1fh", ErrOutOfWindow, ev.Start, ev.End)
	}
	return ev, nil
}

// flight is Flight without the trip-window check.
func (n *Normalizer) flight(flightIndex int, list domain.FlightList, segIndex int, seg domain.FlightSegment) (domain.TimelineEvent, error) {
	var ev domain.TimelineEvent

	depDate, err := n.parseDate("dep_date", seg.DepDate)
	if err != nil {
		return ev, err
	}
	arrDate := depDate
	if strings.TrimSpace(seg.ArrDate) != "" {
		if arrDate, err = n.parseDate("arr_date", seg.ArrDate); err != nil {
			return ev, err
		}
	}
	depHour, err := parseTime("dep_time", seg.DepTime)
	if err != nil {
		return ev, err
	}
	arrHour, err := parseTime("arr_time", seg.ArrTime)
	if err != nil {
		return ev, err
	}

	ctx := n.ctx
	ctx.Preferred = n.trip.DestTZ
	depZone := n.resolver.Resolve(seg.DepPort, ctx)
	arrZone := n.resolver.Resolve(seg.ArrPort, ctx)

	fe := &domain.FlightEvent{
		FlightIndex:  flightIndex,
		List:         list,
		SegmentIndex: segIndex,
		Segment:      seg,
		DepZone:      depZone,
		ArrZone:      arrZone,
	}
	fe.DepCity, _ = n.resolver.AirportCity(seg.DepPort)
	fe.ArrCity, _ = n.resolver.AirportCity(seg.ArrPort)

	start := n.position(depDate, depHour, depZone)
	end := n.position(arrDate, arrHour, arrZone)
	if end < start {
		end += 24
		fe.Overnight = true
	}

	return domain.TimelineEvent{
		Kind:   domain.EventFlight,
		Key:    FlightKey(flightIndex, list, segIndex, seg.ID),
		Start:  start,
		End:    end,
		Flight: fe,
	}, nil
}

// Hotel projects one stay. Both ends are read in the destination zone,
// whatever the hotel's name suggests.
func (n *Normalizer) Hotel(index int, h domain.Hotel) (domain.TimelineEvent, error) {
	var ev domain.TimelineEvent

	in, err := n.parseDate("check_in", h.CheckIn)
	if err != nil {
		return ev, err
	}
	out, err := n.parseDate("check_out", h.CheckOut)
	if err != nil {
		return ev, err
	}
	inHour, err := timeOrDefault("check_in_time", h.CheckInTime, DefaultCheckIn)
	if err != nil {
		return ev, err
	}
	outHour, err := timeOrDefault("check_out_time", h.CheckOutTime, DefaultCheckOut)
	if err != nil {
		return ev, err
	}

	zone := n.destZone()
	start := n.position(in, inHour, zone)
	end := n.position(out, outHour, zone)
	if end < start {
		return ev, fmt.Errorf("%w: check_out %s before check_in %s", ErrInverted, out, in)
	}

	return domain.TimelineEvent{
		Kind:  domain.EventHotel,
		Key:   HotelKey(index, h.ID),
		Start: start,
		End:   end,
		Hotel: &domain.HotelEvent{
			HotelIndex: index,
			Hotel:      h.Clone(),
			Zone:       zone,
			Nights:     out.DaysSince(in),
		},
	}, nil
}

func timeOrDefault(field, text string, def float64) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return def, nil
	}
	return parseTime(field, text)
}

// Transport projects one ground leg on the clock named by its stored Side.
// A leg with no side is read on the destination clock; the side is never
// re-derived here. dayIndex is -1 for trip-level legs, otherwise the index
// of the day a legacy nested leg belongs to, whose date fills a blank leg
// date.
func (n *Normalizer) Transport(index, dayIndex int, leg domain.TransportLeg) (domain.TimelineEvent, error) {
	var ev domain.TimelineEvent

	var date localtime.Date
	var err error
	switch {
	case strings.TrimSpace(leg.Date) == "" && dayIndex >= 0 && dayIndex < len(n.trip.Days):
		date = n.trip.Days[dayIndex].Date
	default:
		if date, err = n.parseDate("date", leg.Date); err != nil {
			return ev, err
		}
	}
	startHour, err := parseTime("time", leg.Time)
	if err != nil {
		return ev, err
	}

	zone := n.destZone()
	if leg.Side == domain.SideHome {
		zone = n.trip.HomeTZ
	}

	start := n.position(date, startHour, zone)
	var end float64
	switch {
	case strings.TrimSpace(leg.EndTime) != "":
		endHour, err := parseTime("end_time", leg.EndTime)
		if err != nil {
			return ev, err
		}
		end = n.position(date, endHour, zone)
		if end < start {
			end += 24
		}
	case leg.DurationMin != nil && *leg.DurationMin >= 0:
		end = start + float64(*leg.DurationMin)/60
	default:
		end = start + float64(defaultLegMinutes)/60
	}

	return domain.TimelineEvent{
		Kind:  domain.EventTransport,
		Key:   TransportKey(index, dayIndex, leg.ID),
		Start: start,
		End:   end,
		Transport: &domain.TransportEvent{
			LegIndex: index,
			DayIndex: dayIndex,
			Leg:      leg.Clone(),
			Zone:     zone,
		},
	}, nil
}

// destZone is the destination zone, or the home zone for a trip that never
// set one.
func (n *Normalizer) destZone() string {
	if n.trip.DestTZ != "" {
		return n.trip.DestTZ
	}
	return n.trip.HomeTZ
}

// ClassifyLeg decides which clock a new transport leg's time is read on.
// A "home" endpoint means home. Legs between airports, hotels and work are
// read at the destination. A free-text endpoint is resolved, and the leg is
// home only when that lands in the home zone of a two-zone trip.
//
// The result is meant to be stored on the leg when it is created and left
// alone afterwards.
func ClassifyLeg(from, to string, ctx tz.Context, r *tz.Resolver) domain.Side {
	kinds := [2]string{domain.PlaceKind(from), domain.PlaceKind(to)}
	if kinds[0] == domain.PlaceHome || kinds[1] == domain.PlaceHome {
		return domain.SideHome
	}
	if r == nil {
		r = tz.NewResolver(nil)
	}
	ctx.Preferred = ctx.DestTZ
	for i, token := range [2]string{from, to} {
		if kinds[i] != "" || strings.TrimSpace(token) == "" {
			continue
		}
		zone := r.Resolve(token, ctx)
		if zone == ctx.HomeTZ && ctx.HomeTZ != ctx.DestTZ {
			return domain.SideHome
		}
	}
	return domain.SideDest
}

// FlightKey is the stable key of a flight segment event. Ids are used when
// the source has them so reordering does not change keys.
func FlightKey(flightIndex int, list domain.FlightList, segIndex int, segID string) string {
	if segID != "" {
		return "flight:" + segID
	}
	return fmt.Sprintf("flight:%d:%s:%d", flightIndex, list, segIndex)
}

// HotelKey is the stable key of a hotel event.
func HotelKey(index int, id string) string {
	if id != "" {
		return "hotel:" + id
	}
	return fmt.Sprintf("hotel:%d", index)
}

// TransportKey is the stable key of a transport event.
func TransportKey(index, dayIndex int, id string) string {
	switch {
	case id != "":
		return "transport:" + id
	case dayIndex >= 0:
		return fmt.Sprintf("transport:day%d:%d", dayIndex, index)
	default:
		return fmt.Sprintf("transport:%d", index)
	}
}
