package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
)

// MemoryTripStore is an in-memory TripStore. It is safe for concurrent use
// and hands out deep copies, so callers never share state with the store.
type MemoryTripStore struct {
	mu  sync.RWMutex
	now func() time.Time

	byName map[string]domain.StoredTrip
}

// NewMemoryTripStore returns an empty store. A nil now uses time.Now.
func NewMemoryTripStore(now func() time.Time) *MemoryTripStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryTripStore{now: now, byName: make(map[string]domain.StoredTrip)}
}

var _ TripStore = (*MemoryTripStore)(nil)

func (m *MemoryTripStore) Put(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	name := snap.Trip.Name
	t, ok := m.byName[name]
	if !ok {
		t = domain.StoredTrip{ID: uuid.New(), Name: name, CreatedAt: now}
	}
	t.Snapshot = snap.Clone()
	t.UpdatedAt = now
	m.byName[name] = t
	return cloneStored(t), nil
}

func (m *MemoryTripStore) Get(ctx context.Context, name string) (domain.StoredTrip, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.byName[name]
	if !ok {
		return domain.StoredTrip{}, fmt.Errorf("repo.MemoryTripStore.Get: %w", domain.ErrNotFound)
	}
	return cloneStored(t), nil
}

func (m *MemoryTripStore) List(ctx context.Context, page domain.PaginationParams) ([]domain.StoredTrip, int, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.byName))
	for n := range m.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	out := []domain.StoredTrip{}
	for i := max(page.Offset(), 0); i < len(names) && len(out) < page.Limit; i++ {
		out = append(out, cloneStored(m.byName[names[i]]))
	}
	return out, len(names), nil
}

func (m *MemoryTripStore) Delete(ctx context.Context, name string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[name]; !ok {
		return fmt.Errorf("repo.MemoryTripStore.Delete: %w", domain.ErrNotFound)
	}
	delete(m.byName, name)
	return nil
}

func cloneStored(t domain.StoredTrip) domain.StoredTrip {
	t.Snapshot = t.Snapshot.Clone()
	return t
}
