package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/repo"
	"github.com/pkordes/perdiem-planner/backend/testutil"
)

// newPGStore opens a transaction against the test database and returns a
// TripStore backed by it. The transaction is rolled back when the test
// finishes. Skipped when TEST_DATABASE_URL is not set.
func newPGStore(t *testing.T) repo.TripStore {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewTripStore(tx)
}

func newMemoryStore(t *testing.T) repo.TripStore {
	t.Helper()
	return repo.NewMemoryTripStore(nil)
}

// snapshotFixture returns a two-day trip snapshot with one flight, named name.
func snapshotFixture(name string) domain.Snapshot {
	trip := domain.Trip{Name: name, HomeTZ: "America/New_York", DestTZ: "Asia/Tokyo", DestCity: "Tokyo"}
	trip, err := trip.WithDateRange(localtime.NewDate(2026, time.April, 12), localtime.NewDate(2026, time.April, 13))
	if err != nil {
		panic(err)
	}
	mie := 74.0
	trip.Days[0].BaseMIE = &mie
	return domain.Snapshot{
		Version: domain.SnapshotVersion,
		Trip:    trip,
		Flights: []domain.Flight{{Outbound: []domain.FlightSegment{{
			DepPort: "JFK", ArrPort: "NRT",
			DepDate: "2026-04-12", DepTime: "10:00a",
			ArrDate: "2026-04-13", ArrTime: "2:00p",
		}}}},
		Transport: []domain.TransportLeg{{From: "home", To: "airport", Date: "2026-04-12", Time: "7a", Side: domain.SideHome}},
	}
}

// TestTripStore runs the same behavioural checks against every implementation.
func TestTripStore(t *testing.T) {
	impls := map[string]func(*testing.T) repo.TripStore{
		"memory":   newMemoryStore,
		"postgres": newPGStore,
	}
	for name, newStore := range impls {
		t.Run(name, func(t *testing.T) {
			t.Run("PutThenGet", func(t *testing.T) { testPutThenGet(t, newStore(t)) })
			t.Run("PutReplacesKeepingID", func(t *testing.T) { testPutReplaces(t, newStore(t)) })
			t.Run("GetNotFound", func(t *testing.T) { testGetNotFound(t, newStore(t)) })
			t.Run("ListPages", func(t *testing.T) { testListPages(t, newStore(t)) })
			t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
		})
	}
}

func testPutThenGet(t *testing.T, s repo.TripStore) {
	ctx := context.Background()
	input := snapshotFixture("tokyo")

	put, err := s.Put(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, put.ID, "ID should be generated")
	assert.False(t, put.CreatedAt.IsZero())

	got, err := s.Get(ctx, "tokyo")
	require.NoError(t, err)
	assert.Equal(t, put.ID, got.ID)
	require.Len(t, got.Snapshot.Trip.Days, 2)
	assert.True(t, got.Snapshot.Trip.Days[1].Date.Equal(input.Trip.Days[1].Date))
	require.NotNil(t, got.Snapshot.Trip.Days[0].BaseMIE)
	assert.Equal(t, 74.0, *got.Snapshot.Trip.Days[0].BaseMIE)
	assert.Equal(t, "2:00p", got.Snapshot.Flights[0].Outbound[0].ArrTime, "raw local values are stored as entered")
	assert.Equal(t, domain.SideHome, got.Snapshot.Transport[0].Side)
}

func testPutReplaces(t *testing.T, s repo.TripStore) {
	ctx := context.Background()
	first, err := s.Put(ctx, snapshotFixture("tokyo"))
	require.NoError(t, err)

	next := snapshotFixture("tokyo")
	next.Trip.DestCity = "Osaka"
	second, err := s.Put(ctx, next)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Osaka", second.Snapshot.Trip.DestCity)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func testGetNotFound(t *testing.T, s repo.TripStore) {
	_, err := s.Get(context.Background(), "nowhere")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testListPages(t *testing.T, s repo.TripStore) {
	ctx := context.Background()
	for i := 5; i >= 1; i-- {
		_, err := s.Put(ctx, snapshotFixture(fmt.Sprintf("trip-%d", i)))
		require.NoError(t, err)
	}

	page, total, err := s.List(ctx, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "trip-3", page[0].Name)
	assert.Equal(t, "trip-4", page[1].Name)

	empty, total, err := s.List(ctx, domain.PaginationParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, empty)
}

func testDelete(t *testing.T, s repo.TripStore) {
	ctx := context.Background()
	_, err := s.Put(ctx, snapshotFixture("tokyo"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "tokyo"))

	_, err = s.Get(ctx, "tokyo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "tokyo"), domain.ErrNotFound)
}

// ---- memory-only -----------------------------------------------------------

func TestMemoryTripStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := repo.NewMemoryTripStore(func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) })

	input := snapshotFixture("tokyo")
	_, err := s.Put(ctx, input)
	require.NoError(t, err)
	input.Trip.Days[0].Location = "changed after put"

	got, err := s.Get(ctx, "tokyo")
	require.NoError(t, err)
	got.Snapshot.Flights[0].Outbound[0].DepPort = "changed after get"

	again, err := s.Get(ctx, "tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", again.Snapshot.Trip.Days[0].Location)
	assert.Equal(t, "JFK", again.Snapshot.Flights[0].Outbound[0].DepPort)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), again.CreatedAt)
}
