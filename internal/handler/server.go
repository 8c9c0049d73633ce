// Package handler implements the HTTP handlers for the per-diem planner API.
// Handlers decode the request, call the service layer and map domain
// sentinel errors to status codes. Methods are split into domain-specific
// files (health.go, trip.go, timeline.go, export.go) but all share the same
// Server struct.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/expense"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the store or the service layer.
type TripServicer interface {
	Save(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error)
	Get(ctx context.Context, name string) (domain.StoredTrip, error)
	List(ctx context.Context, page domain.PaginationParams) (domain.Page[domain.TripSummary], error)
	Delete(ctx context.Context, name string) error
	SetDateRange(ctx context.Context, name string, start, end localtime.Date) (domain.StoredTrip, error)
	EditDay(ctx context.Context, name string, date localtime.Date, patch service.DayPatch) (domain.Day, error)
	RefreshRates(ctx context.Context, name string) (service.RefreshResult, error)
	AddTransportLeg(ctx context.Context, name string, leg domain.TransportLeg) (domain.TransportLeg, error)
}

// TimelineServicer defines the projection operations the handlers depend on.
type TimelineServicer interface {
	Timeline(ctx context.Context, name string) (service.TimelineView, error)
	Project(snap domain.Snapshot) service.TimelineView
}

// ExportServicer defines the expense summary operation the handlers depend on.
type ExportServicer interface {
	Summary(ctx context.Context, name string) (expense.Summary, error)
}

// Server holds the handler dependencies. Wire it in main.go with Routes.
type Server struct {
	trips     TripServicer
	timelines TimelineServicer
	export    ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, timelines TimelineServicer, export ExportServicer) *Server {
	return &Server{trips: trips, timelines: timelines, export: export}
}

// Routes registers every API route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/timeline", s.ProjectSnapshot)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.PutTrip)
			r.Delete("/", s.DeleteTrip)
			r.Put("/dates", s.SetDates)
			r.Patch("/days/{date}", s.EditDay)
			r.Post("/transport", s.AddTransportLeg)
			r.Post("/rates/refresh", s.RefreshRates)
			r.Get("/timeline", s.GetTimeline)
			r.Get("/summary", s.GetSummary)
		})
	})
}
