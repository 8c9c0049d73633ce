package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
)

const tripNotFound = "trip not found"

// DateRangeRequest is the body of PUT /trips/{name}/dates.
type DateRangeRequest struct {
	Start openapi_types.Date `json:"start"`
	End   openapi_types.Date `json:"end"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	out, err := s.trips.List(r.Context(), domain.NewPaginationParams(page, limit))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrip handles GET /trips/{name}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), nameParam(r))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// PutTrip handles PUT /trips/{name}. The body is a full snapshot; the name
// in the path is the one stored.
func (s *Server) PutTrip(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}
	snap.Trip.Name = nameParam(r)

	saved, err := s.trips.Save(r.Context(), snap)
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteTrip handles DELETE /trips/{name}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), nameParam(r)); err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDates handles PUT /trips/{name}/dates.
func (s *Server) SetDates(w http.ResponseWriter, r *http.Request) {
	var body DateRangeRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Start.Time.IsZero() || body.End.Time.IsZero() {
		writeError(w, r, http.StatusUnprocessableEntity, requestBody("start and end are required"))
		return
	}

	saved, err := s.trips.SetDateRange(r.Context(), nameParam(r),
		localtime.DateOf(body.Start.Time), localtime.DateOf(body.End.Time))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// EditDay handles PATCH /trips/{name}/days/{date}. Fields left out of the
// body are unchanged; fields sent as null are cleared.
func (s *Server) EditDay(w http.ResponseWriter, r *http.Request) {
	date, ok := localtime.ParseDate(chi.URLParam(r, "date"), 0)
	if !ok {
		writeError(w, r, http.StatusUnprocessableEntity, requestBody("date must be YYYY-MM-DD"))
		return
	}
	var patch service.DayPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	day, err := s.trips.EditDay(r.Context(), nameParam(r), date, patch)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// AddTransportLeg handles POST /trips/{name}/transport.
func (s *Server) AddTransportLeg(w http.ResponseWriter, r *http.Request) {
	var leg domain.TransportLeg
	if !decodeJSON(w, r, &leg) {
		return
	}

	added, err := s.trips.AddTransportLeg(r.Context(), nameParam(r), leg)
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// RefreshRates handles POST /trips/{name}/rates/refresh.
func (s *Server) RefreshRates(w http.ResponseWriter, r *http.Request) {
	res, err := s.trips.RefreshRates(r.Context(), nameParam(r))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- request helpers --------------------------------------------------------

// nameParam returns the {name} path segment, decoded. chi matches on the
// raw path when the name contains escaped slashes.
func nameParam(r *http.Request) string {
	v := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if u, err := url.PathUnescape(v); err == nil {
			v = u
		}
	}
	return v
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name: key, value: raw}
	}
	return &n, nil
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return e.name + " must be an integer, got " + strconv.Quote(e.value)
}
