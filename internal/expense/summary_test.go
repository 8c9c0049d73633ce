package expense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/expense"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
)

// ---- helpers ---------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func fx() currency.Rates {
	return currency.Rates{Base: "USD", Rates: map[string]float64{"JPY": 100}}
}

// tripSnapshot is a three-day trip with a $100 M&IE rate on every day and
// a nightly rate of ¥20,000 capped at $180 with 10% overage and ¥1,000 tax.
func tripSnapshot() domain.Snapshot {
	trip := domain.Trip{Name: "tokyo", HomeTZ: "America/New_York", DestTZ: "Asia/Tokyo", DestCity: "Tokyo"}
	trip, err := trip.WithDateRange(localtime.NewDate(2026, time.April, 12), localtime.NewDate(2026, time.April, 14))
	if err != nil {
		panic(err)
	}
	for i := range trip.Days {
		trip.Days[i].BaseMIE = ptr(100.0)
		trip.Days[i].Lodging = domain.Lodging{
			Rate:              ptr(20000.0),
			Tax:               ptr(1000.0),
			Currency:          "JPY",
			Cap:               ptr(180.0),
			OverageCapPercent: 10,
		}
	}
	return domain.Snapshot{Version: domain.SnapshotVersion, Trip: trip}
}

// ---- Summarize -------------------------------------------------------------

func TestSummarize_MIEAndLodging(t *testing.T) {
	got := expense.Summarize(tripSnapshot(), fx())

	require.Len(t, got.Days, 3)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, []int{75, 100, 75}, []int{got.Days[0].Percent, got.Days[1].Percent, got.Days[2].Percent})
	assert.InDelta(t, 75+100+75, got.MIE, 1e-9)

	// $200 capped at $198, plus $10 tax, on the two nights only.
	require.NotNil(t, got.Days[0].Lodging)
	assert.InDelta(t, 208.0, *got.Days[0].Lodging, 1e-9)
	assert.Nil(t, got.Days[2].Lodging, "no lodging on the last day")
	assert.InDelta(t, 416.0, got.Lodging, 1e-9)
	assert.InDelta(t, got.MIE+got.Lodging, got.Total, 1e-9)
	assert.Empty(t, got.Unconverted)
}

func TestSummarize_MissingRateStaysNil(t *testing.T) {
	snap := tripSnapshot()
	snap.Trip.Days[1].BaseMIE = nil
	snap.Trip.Days[0].Lodging.Rate = nil

	got := expense.Summarize(snap, fx())

	assert.Nil(t, got.Days[1].MIE)
	assert.Equal(t, 1, got.MissingMIE)
	assert.Nil(t, got.Days[0].Lodging)
	assert.InDelta(t, 150.0, got.MIE, 1e-9)
}

func TestSummarize_UnderCapIsClaimedInFull(t *testing.T) {
	snap := tripSnapshot()
	for i := range snap.Trip.Days {
		snap.Trip.Days[i].Lodging = domain.Lodging{Rate: ptr(150.0), Cap: ptr(180.0)}
	}

	got := expense.Summarize(snap, fx())

	assert.InDelta(t, 300.0, got.Lodging, 1e-9)
}

func TestSummarize_ItemsAndUnconverted(t *testing.T) {
	snap := tripSnapshot()
	snap.Flights = []domain.Flight{{Cost: ptr(1200.0)}, {Cost: ptr(90.0), Currency: "GBP"}}
	snap.Hotels = []domain.Hotel{
		{CheckIn: "2026-04-12", CheckOut: "2026-04-14", Nightly: ptr(20000.0), Currency: "JPY"},
	}
	snap.Transport = []domain.TransportLeg{{Cost: ptr(3000.0), Currency: "JPY"}}
	snap.Trip.Days[1].Transport = []domain.TransportLeg{{Cost: ptr(12.5)}}

	got := expense.Summarize(snap, fx())

	assert.InDelta(t, 1200.0, got.Flights, 1e-9)
	assert.InDelta(t, 400.0, got.HotelsBooked, 1e-9)
	assert.InDelta(t, 42.5, got.Transport, 1e-9)
	require.Len(t, got.Unconverted, 1)
	assert.Equal(t, expense.Unconverted{Item: "flight 2", Amount: 90, Currency: "GBP"}, got.Unconverted[0])
	assert.InDelta(t, got.MIE+got.Lodging+1200+42.5, got.Total, 1e-9)
}

func TestSummarize_ReportingCurrency(t *testing.T) {
	snap := tripSnapshot()
	snap.Trip.Currency = "JPY"

	got := expense.Summarize(snap, fx())

	assert.Equal(t, "JPY", got.Currency)
	// The cap is in the reporting currency now: ¥198 + ¥1,000 tax.
	require.NotNil(t, got.Days[0].Lodging)
	assert.InDelta(t, 1198.0, *got.Days[0].Lodging, 1e-9)
}

func TestSummarize_EmptyTrip(t *testing.T) {
	got := expense.Summarize(domain.Snapshot{}, currency.Identity)

	assert.Empty(t, got.Days)
	assert.Zero(t, got.Total)
}
