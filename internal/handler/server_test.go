package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/expense"
	"github.com/pkordes/perdiem-planner/backend/internal/handler"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	save            func(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error)
	get             func(ctx context.Context, name string) (domain.StoredTrip, error)
	list            func(ctx context.Context, page domain.PaginationParams) (domain.Page[domain.TripSummary], error)
	delete          func(ctx context.Context, name string) error
	setDateRange    func(ctx context.Context, name string, start, end localtime.Date) (domain.StoredTrip, error)
	editDay         func(ctx context.Context, name string, date localtime.Date, patch service.DayPatch) (domain.Day, error)
	refreshRates    func(ctx context.Context, name string) (service.RefreshResult, error)
	addTransportLeg func(ctx context.Context, name string, leg domain.TransportLeg) (domain.TransportLeg, error)
}

func (m *mockTripServicer) Save(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error) {
	return m.save(ctx, snap)
}
func (m *mockTripServicer) Get(ctx context.Context, name string) (domain.StoredTrip, error) {
	return m.get(ctx, name)
}
func (m *mockTripServicer) List(ctx context.Context, page domain.PaginationParams) (domain.Page[domain.TripSummary], error) {
	return m.list(ctx, page)
}
func (m *mockTripServicer) Delete(ctx context.Context, name string) error {
	return m.delete(ctx, name)
}
func (m *mockTripServicer) SetDateRange(ctx context.Context, name string, start, end localtime.Date) (domain.StoredTrip, error) {
	return m.setDateRange(ctx, name, start, end)
}
func (m *mockTripServicer) EditDay(ctx context.Context, name string, date localtime.Date, patch service.DayPatch) (domain.Day, error) {
	return m.editDay(ctx, name, date, patch)
}
func (m *mockTripServicer) RefreshRates(ctx context.Context, name string) (service.RefreshResult, error) {
	return m.refreshRates(ctx, name)
}
func (m *mockTripServicer) AddTransportLeg(ctx context.Context, name string, leg domain.TransportLeg) (domain.TransportLeg, error) {
	return m.addTransportLeg(ctx, name, leg)
}

// mockTimelineServicer is a test double for handler.TimelineServicer.
type mockTimelineServicer struct {
	timeline func(ctx context.Context, name string) (service.TimelineView, error)
	project  func(snap domain.Snapshot) service.TimelineView
}

func (m *mockTimelineServicer) Timeline(ctx context.Context, name string) (service.TimelineView, error) {
	return m.timeline(ctx, name)
}
func (m *mockTimelineServicer) Project(snap domain.Snapshot) service.TimelineView {
	return m.project(snap)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	summary func(ctx context.Context, name string) (expense.Summary, error)
}

func (m *mockExportServicer) Summary(ctx context.Context, name string) (expense.Summary, error) {
	return m.summary(ctx, name)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.TimelineServicer = (*mockTimelineServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into a chi router the
// same way main.go does. Nil mocks are replaced by empty ones.
func newHTTPHandler(trips handler.TripServicer, timelines handler.TimelineServicer, export handler.ExportServicer) http.Handler {
	if trips == nil {
		trips = &mockTripServicer{}
	}
	if timelines == nil {
		timelines = &mockTimelineServicer{}
	}
	if export == nil {
		export = &mockExportServicer{}
	}
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	handler.NewServer(trips, timelines, export).Routes(r)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
