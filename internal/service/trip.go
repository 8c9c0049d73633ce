// Package service contains the business logic of the per-diem planner API.
// Services validate input, enforce trip rules and orchestrate store calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/perdiem"
	"github.com/pkordes/perdiem-planner/backend/internal/repo"
	"github.com/pkordes/perdiem-planner/backend/internal/timeline"
	"github.com/pkordes/perdiem-planner/backend/internal/tz"
)

// TripService implements the trip editing operations.
type TripService struct {
	store    repo.TripStore
	rates    perdiem.RateLookup
	resolver *tz.Resolver
	newID    func() string
}

// NewTripService constructs a TripService. A nil rates uses perdiem.NoRates
// and a nil resolver the built-in airport table.
func NewTripService(store repo.TripStore, rates perdiem.RateLookup, resolver *tz.Resolver) *TripService {
	if rates == nil {
		rates = perdiem.NoRates{}
	}
	if resolver == nil {
		resolver = tz.NewResolver(nil)
	}
	return &TripService{
		store:    store,
		rates:    rates,
		resolver: resolver,
		newID:    func() string { return uuid.NewString() },
	}
}

// Save validates snap and stores it under its trip name, replacing any
// previous version. Flights, hotels and legs without an id get one, and
// legs without a side are classified now; both are kept from then on.
func (s *TripService) Save(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error) {
	snap = s.prepare(snap)
	if err := validateSnapshot(snap); err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}
	stored, err := s.store.Put(ctx, snap)
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}
	return stored, nil
}

// Get returns a stored trip by name.
func (s *TripService) Get(ctx context.Context, name string) (domain.StoredTrip, error) {
	t, err := s.store.Get(ctx, name)
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return t, nil
}

// List returns one page of trip summaries ordered by name.
func (s *TripService) List(ctx context.Context, page domain.PaginationParams) (domain.Page[domain.TripSummary], error) {
	trips, total, err := s.store.List(ctx, page)
	if err != nil {
		return domain.Page[domain.TripSummary]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	out := domain.Page[domain.TripSummary]{
		Items: make([]domain.TripSummary, 0, len(trips)),
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for _, t := range trips {
		out.Items = append(out.Items, domain.SummaryOf(t.Snapshot))
	}
	return out, nil
}

// Delete removes a trip by name.
func (s *TripService) Delete(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// SetDateRange resizes a trip to start..end. Days inside the new range keep
// their state, new days are created with every meal claimed, and days
// outside the range are removed.
func (s *TripService) SetDateRange(ctx context.Context, name string, start, end localtime.Date) (domain.StoredTrip, error) {
	return s.update(ctx, "SetDateRange", name, func(snap *domain.Snapshot) error {
		trip, err := snap.Trip.WithDateRange(start, end)
		if err != nil {
			return err
		}
		snap.Trip = trip
		return nil
	})
}

// DayPatch is a partial update of one Day. An unspecified field is left
// alone; a field explicitly set to null clears the value.
type DayPatch struct {
	Location          nullable.Nullable[string]  `json:"location,omitempty"`
	BaseMIE           nullable.Nullable[float64] `json:"base_mie,omitempty"`
	Breakfast         *bool                      `json:"breakfast,omitempty"`
	Lunch             *bool                      `json:"lunch,omitempty"`
	Dinner            *bool                      `json:"dinner,omitempty"`
	Incidentals       *bool                      `json:"incidentals,omitempty"`
	LodgingRate       nullable.Nullable[float64] `json:"lodging_rate,omitempty"`
	LodgingTax        nullable.Nullable[float64] `json:"lodging_tax,omitempty"`
	LodgingCurrency   nullable.Nullable[string]  `json:"lodging_currency,omitempty"`
	LodgingCap        nullable.Nullable[float64] `json:"lodging_cap,omitempty"`
	OverageCapPercent *float64                   `json:"overage_cap_percent,omitempty"`
	ForeignMIE        *bool                      `json:"foreign_mie,omitempty"`
	ForeignLodging    *bool                      `json:"foreign_lodging,omitempty"`
}

// EditDay applies patch to the day on date.
func (s *TripService) EditDay(ctx context.Context, name string, date localtime.Date, patch DayPatch) (domain.Day, error) {
	var edited domain.Day
	_, err := s.update(ctx, "EditDay", name, func(snap *domain.Snapshot) error {
		_, i, ok := snap.Trip.DayFor(date)
		if !ok {
			return fmt.Errorf("%w: %s is not a day of trip %q", domain.ErrNotFound, date, name)
		}
		d := &snap.Trip.Days[i]
		if err := applyDayPatch(d, patch); err != nil {
			return err
		}
		edited = *d
		return nil
	})
	if err != nil {
		return domain.Day{}, err
	}
	return edited, nil
}

func applyDayPatch(d *domain.Day, p DayPatch) error {
	if err := patchString(&d.Location, p.Location); err != nil {
		return err
	}
	if err := patchFloat(&d.BaseMIE, "base_mie", p.BaseMIE); err != nil {
		return err
	}
	patchBool(&d.Meals.Breakfast, p.Breakfast)
	patchBool(&d.Meals.Lunch, p.Lunch)
	patchBool(&d.Meals.Dinner, p.Dinner)
	patchBool(&d.Meals.Incidentals, p.Incidentals)
	if err := patchFloat(&d.Lodging.Rate, "lodging_rate", p.LodgingRate); err != nil {
		return err
	}
	if err := patchFloat(&d.Lodging.Tax, "lodging_tax", p.LodgingTax); err != nil {
		return err
	}
	if err := patchFloat(&d.Lodging.Cap, "lodging_cap", p.LodgingCap); err != nil {
		return err
	}
	if err := patchString(&d.Lodging.Currency, p.LodgingCurrency); err != nil {
		return err
	}
	if p.OverageCapPercent != nil {
		if *p.OverageCapPercent < 0 {
			return fmt.Errorf("%w: overage_cap_percent must not be negative", domain.ErrValidation)
		}
		d.Lodging.OverageCapPercent = *p.OverageCapPercent
	}
	patchBool(&d.ForeignMIE, p.ForeignMIE)
	patchBool(&d.ForeignLodging, p.ForeignLodging)
	return nil
}

func patchString(dst *string, n nullable.Nullable[string]) error {
	switch {
	case !n.IsSpecified():
	case n.IsNull():
		*dst = ""
	default:
		v, err := n.Get()
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(v)
	}
	return nil
}

func patchFloat(dst **float64, field string, n nullable.Nullable[float64]) error {
	switch {
	case !n.IsSpecified():
	case n.IsNull():
		*dst = nil
	default:
		v, err := n.Get()
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, field)
		}
		*dst = &v
	}
	return nil
}

func patchBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// RefreshResult reports what RefreshRates changed.
type RefreshResult struct {
	Updated int      `json:"updated"`
	Missing []string `json:"missing"`
}

// RefreshRates looks up each day's location and date in the rate table and
// copies what it finds into the day's base M&IE, lodging cap and foreign
// flags. Days with no rate data are reported in Missing and left as they
// are; they never get a guessed rate.
func (s *TripService) RefreshRates(ctx context.Context, name string) (RefreshResult, error) {
	res := RefreshResult{Missing: []string{}}
	_, err := s.update(ctx, "RefreshRates", name, func(snap *domain.Snapshot) error {
		for i := range snap.Trip.Days {
			d := &snap.Trip.Days[i]
			r := s.rates.RatesFor(d.Location, d.Date)
			if !r.Found {
				res.Missing = append(res.Missing, d.Date.String())
				continue
			}
			if r.MIE != nil {
				v := *r.MIE
				d.BaseMIE = &v
			}
			if r.Lodging != nil {
				v := *r.Lodging
				d.Lodging.Cap = &v
			}
			d.ForeignMIE = r.IsForeign
			d.ForeignLodging = r.IsForeign
			res.Updated++
		}
		return nil
	})
	if err != nil {
		return RefreshResult{}, err
	}
	return res, nil
}

// AddTransportLeg appends a leg to the trip-level list. Its side is
// classified from its endpoints unless the caller set one, and then stored.
func (s *TripService) AddTransportLeg(ctx context.Context, name string, leg domain.TransportLeg) (domain.TransportLeg, error) {
	if err := validateNewLeg(leg); err != nil {
		return domain.TransportLeg{}, fmt.Errorf("service.TripService.AddTransportLeg: %w", err)
	}
	var added domain.TransportLeg
	_, err := s.update(ctx, "AddTransportLeg", name, func(snap *domain.Snapshot) error {
		if leg.ID == "" {
			leg.ID = s.newID()
		}
		if leg.Side == "" {
			leg.Side = timeline.ClassifyLeg(leg.From, leg.To, timeline.ContextOf(snap.Trip), s.resolver)
		}
		snap.Transport = append(snap.Transport, leg)
		added = leg
		return nil
	})
	if err != nil {
		return domain.TransportLeg{}, err
	}
	return added, nil
}

// update loads a trip, applies fn to a copy of its snapshot, validates the
// result and stores it.
func (s *TripService) update(ctx context.Context, op, name string, fn func(*domain.Snapshot) error) (domain.StoredTrip, error) {
	current, err := s.store.Get(ctx, name)
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	snap := current.Snapshot.Clone()
	if err := fn(&snap); err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	snap = s.prepare(snap)
	if err := validateSnapshot(snap); err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	stored, err := s.store.Put(ctx, snap)
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return stored, nil
}

// prepare fills the stored state a snapshot may arrive without: version,
// ids and transport sides. It works on a copy.
func (s *TripService) prepare(snap domain.Snapshot) domain.Snapshot {
	snap = snap.Clone()
	snap.Trip.Name = strings.TrimSpace(snap.Trip.Name)
	if snap.Version == 0 {
		snap.Version = domain.SnapshotVersion
	}
	ctx := timeline.ContextOf(snap.Trip)
	for i := range snap.Flights {
		if snap.Flights[i].ID == "" {
			snap.Flights[i].ID = s.newID()
		}
	}
	for i := range snap.Hotels {
		if snap.Hotels[i].ID == "" {
			snap.Hotels[i].ID = s.newID()
		}
	}
	for i := range snap.Transport {
		s.prepareLeg(&snap.Transport[i], ctx)
	}
	for d := range snap.Trip.Days {
		for i := range snap.Trip.Days[d].Transport {
			s.prepareLeg(&snap.Trip.Days[d].Transport[i], ctx)
		}
	}
	return snap
}

func (s *TripService) prepareLeg(l *domain.TransportLeg, ctx tz.Context) {
	if l.ID == "" {
		l.ID = s.newID()
	}
	if l.Side == "" {
		l.Side = timeline.ClassifyLeg(l.From, l.To, ctx, s.resolver)
	}
}

func validateSnapshot(snap domain.Snapshot) error {
	t := snap.Trip
	if t.Name == "" {
		return fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if !tz.Valid(t.HomeTZ) {
		return fmt.Errorf("%w: home_tz %q is not a known time zone", domain.ErrValidation, t.HomeTZ)
	}
	if t.DestTZ != "" && !tz.Valid(t.DestTZ) {
		return fmt.Errorf("%w: dest_tz %q is not a known time zone", domain.ErrValidation, t.DestTZ)
	}
	refYear := t.Days[0].Date.Year()
	for i, h := range snap.Hotels {
		in, okIn := localtime.ParseDate(h.CheckIn, refYear)
		out, okOut := localtime.ParseDate(h.CheckOut, refYear)
		if okIn && okOut && out.Before(in) {
			return fmt.Errorf("%w: hotel %d checks out before it checks in", domain.ErrValidation, i+1)
		}
		switch h.CostMode {
		case "", domain.HotelCostNightly, domain.HotelCostTotal, domain.HotelCostPerNight:
		default:
			return fmt.Errorf("%w: hotel %d has unknown cost_mode %q", domain.ErrValidation, i+1, h.CostMode)
		}
	}
	for i, l := range snap.Transport {
		if !l.Side.Valid() {
			return fmt.Errorf("%w: transport leg %d has unknown side %q", domain.ErrValidation, i+1, l.Side)
		}
	}
	for _, d := range t.Days {
		for i, l := range d.Transport {
			if !l.Side.Valid() {
				return fmt.Errorf("%w: transport leg %d on %s has unknown side %q", domain.ErrValidation, i+1, d.Date, l.Side)
			}
		}
	}
	return nil
}

// validateNewLeg checks a leg entered through the API. Snapshots may carry
// half-edited legs, but a newly added one must be placeable.
func validateNewLeg(l domain.TransportLeg) error {
	if _, ok := localtime.ParseDate(l.Date, 0); !ok {
		return fmt.Errorf("%w: date %q is not a date", domain.ErrValidation, l.Date)
	}
	if _, ok := localtime.ParseTimeOfDay(l.Time); !ok {
		return fmt.Errorf("%w: time %q is not a time of day", domain.ErrValidation, l.Time)
	}
	if l.EndTime != "" {
		if _, ok := localtime.ParseTimeOfDay(l.EndTime); !ok {
			return fmt.Errorf("%w: end_time %q is not a time of day", domain.ErrValidation, l.EndTime)
		}
	}
	if l.DurationMin != nil && *l.DurationMin < 0 {
		return fmt.Errorf("%w: duration_min must not be negative", domain.ErrValidation)
	}
	if l.Side != "" && !l.Side.Valid() {
		return fmt.Errorf("%w: side %q must be home or dest", domain.ErrValidation, l.Side)
	}
	return nil
}
