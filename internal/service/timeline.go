package service

import (
	"context"
	"fmt"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/repo"
	"github.com/pkordes/perdiem-planner/backend/internal/timeline"
)

// TimelineView is a projection plus the advisory layover check.
type TimelineView struct {
	timeline.Projection
	Layovers []timeline.Layover `json:"layovers"`
}

// TimelineService projects stored or posted snapshots onto the home axis.
type TimelineService struct {
	store repo.TripStore
	opts  timeline.Options
}

// NewTimelineService constructs a TimelineService.
func NewTimelineService(store repo.TripStore, opts timeline.Options) *TimelineService {
	return &TimelineService{store: store, opts: opts}
}

// Timeline loads a trip by name and projects it.
func (s *TimelineService) Timeline(ctx context.Context, name string) (TimelineView, error) {
	t, err := s.store.Get(ctx, name)
	if err != nil {
		return TimelineView{}, fmt.Errorf("service.TimelineService.Timeline: %w", err)
	}
	return s.Project(t.Snapshot), nil
}

// Project projects a snapshot that is not stored. It never fails: events
// that cannot be placed are reported in Skipped.
func (s *TimelineService) Project(snap domain.Snapshot) TimelineView {
	layovers := timeline.Layovers(snap, s.opts)
	if layovers == nil {
		layovers = []timeline.Layover{}
	}
	return TimelineView{
		Projection: timeline.Project(snap, s.opts),
		Layovers:   layovers,
	}
}
