package handler

import (
	"net/http"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
)

// GetTimeline handles GET /trips/{name}/timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	view, err := s.timelines.Timeline(r.Context(), nameParam(r))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ProjectSnapshot handles POST /timeline: it projects the posted snapshot
// without storing it.
func (s *Server) ProjectSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}
	writeJSON(w, http.StatusOK, s.timelines.Project(snap))
}
