package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
	"github.com/pkordes/perdiem-planner/backend/internal/timeline"
)

func withFlights(snap domain.Snapshot) domain.Snapshot {
	snap.Flights = []domain.Flight{{
		Outbound: []domain.FlightSegment{
			{ID: "leg1", DepPort: "JFK", ArrPort: "ORD", DepDate: "2026-04-12", DepTime: "8:00a", ArrTime: "10:00a"},
			{ID: "leg2", DepPort: "ORD", ArrPort: "NRT", DepDate: "2026-04-12", DepTime: "9:00a", ArrDate: "2026-04-13", ArrTime: "2:00p"},
		},
		Cost:     ptr(1800.0),
		Currency: "USD",
	}}
	return snap
}

// ---- TimelineService -------------------------------------------------------

func TestTimelineService_Timeline(t *testing.T) {
	current := withFlights(tokyoSnapshot())
	svc := service.NewTimelineService(echoStore(current, nil), timeline.Options{})

	got, err := svc.Timeline(context.Background(), current.Trip.Name)

	require.NoError(t, err)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "flight:leg1", got.Events[0].Key)
	assert.NotEmpty(t, got.Midnights)
	require.Len(t, got.Layovers, 1, "leg2 leaves Chicago before leg1 lands")
	assert.Equal(t, 1, got.Layovers[0].SegmentIndex)
	assert.Less(t, got.Layovers[0].Gap, 0.0)
}

func TestTimelineService_Timeline_NotFound(t *testing.T) {
	svc := service.NewTimelineService(echoStore(tokyoSnapshot(), nil), timeline.Options{})

	_, err := svc.Timeline(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimelineService_Project_DegenerateTrip(t *testing.T) {
	svc := service.NewTimelineService(nil, timeline.Options{})

	got := svc.Project(domain.Snapshot{Trip: domain.Trip{Name: "empty", HomeTZ: "UTC"}})

	assert.NotNil(t, got.Events)
	assert.Empty(t, got.Events)
	assert.Empty(t, got.Midnights)
	assert.NotNil(t, got.Layovers)
}

// ---- ExportService ---------------------------------------------------------

func TestExportService_Summary(t *testing.T) {
	current := withFlights(tokyoSnapshot())
	for i := range current.Trip.Days {
		current.Trip.Days[i].BaseMIE = ptr(80.0)
	}
	svc := service.NewExportService(echoStore(current, nil), currency.Identity)

	got, err := svc.Summary(context.Background(), current.Trip.Name)

	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.Days, 3)
	// 75% + 100% + 75% of 80.
	assert.InDelta(t, 200.0, got.MIE, 1e-9)
	assert.InDelta(t, 1800.0, got.Flights, 1e-9)
	assert.InDelta(t, 2000.0, got.Total, 1e-9)
}

func TestExportService_Summary_NotFound(t *testing.T) {
	svc := service.NewExportService(echoStore(tokyoSnapshot(), nil), currency.Identity)

	_, err := svc.Summary(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
