package service

import (
	"context"
	"fmt"

	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/expense"
	"github.com/pkordes/perdiem-planner/backend/internal/repo"
)

// ExportService builds expense summaries of stored trips.
type ExportService struct {
	store repo.TripStore
	fx    currency.Rates
}

// NewExportService constructs an ExportService. Amounts are converted with
// fx; an empty table converts only between equal currencies.
func NewExportService(store repo.TripStore, fx currency.Rates) *ExportService {
	return &ExportService{store: store, fx: fx}
}

// Summary returns the per-day and total expense summary of a trip.
func (s *ExportService) Summary(ctx context.Context, name string) (expense.Summary, error) {
	t, err := s.store.Get(ctx, name)
	if err != nil {
		return expense.Summary{}, fmt.Errorf("service.ExportService.Summary: %w", err)
	}
	return expense.Summarize(t.Snapshot, s.fx), nil
}
