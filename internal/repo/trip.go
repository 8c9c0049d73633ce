// Package repo persists trip snapshots. Each snapshot is stored whole under
// its trip name; nothing derived from it is stored. Postgres and in-memory
// implementations share the TripStore interface.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripStore is a key-value store of trip snapshots keyed by trip name.
// The service layer depends on this interface, not an implementation.
type TripStore interface {
	// Put inserts or replaces the snapshot stored under snap.Trip.Name and
	// returns the stored record. The id and created_at of an existing
	// record are kept.
	Put(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error)

	// Get returns the trip stored under name, or domain.ErrNotFound.
	Get(ctx context.Context, name string) (domain.StoredTrip, error)

	// List returns one page of trips ordered by name, plus the total count.
	List(ctx context.Context, page domain.PaginationParams) ([]domain.StoredTrip, int, error)

	// Delete removes the trip stored under name, or returns domain.ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// pgTripStore is the Postgres implementation of TripStore. Snapshots live in
// a JSONB column.
type pgTripStore struct {
	db db
}

// NewTripStore constructs a TripStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewTripStore(db db) TripStore {
	return &pgTripStore{db: db}
}

const tripColumns = `id, name, snapshot, created_at, updated_at`

func (r *pgTripStore) Put(ctx context.Context, snap domain.Snapshot) (domain.StoredTrip, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("repo.TripStore.Put: encode: %w", err)
	}

	const q = `
		INSERT INTO trips (name, snapshot)
		VALUES (@name, @snapshot)
		ON CONFLICT (name) DO UPDATE
		SET snapshot   = EXCLUDED.snapshot,
		    updated_at = now()
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":     snap.Trip.Name,
		"snapshot": raw,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("repo.TripStore.Put: %w", err)
	}
	return result, nil
}

func (r *pgTripStore) Get(ctx context.Context, name string) (domain.StoredTrip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE name = @name`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.StoredTrip{}, fmt.Errorf("repo.TripStore.Get: %w", err)
	}
	return result, nil
}

func (r *pgTripStore) List(ctx context.Context, page domain.PaginationParams) ([]domain.StoredTrip, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripStore.List: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripStore.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.StoredTrip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripStore.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripStore.List: rows: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripStore) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE name = @name`, pgx.NamedArgs{"name": name})
	if err != nil {
		return fmt.Errorf("repo.TripStore.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripStore.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps one row into a domain.StoredTrip, decoding the snapshot.
func scanTrip(s scanner) (domain.StoredTrip, error) {
	var (
		t   domain.StoredTrip
		id  pgtype.UUID
		raw []byte
	)

	err := s.Scan(&id, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoredTrip{}, domain.ErrNotFound
		}
		return domain.StoredTrip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if err := json.Unmarshal(raw, &t.Snapshot); err != nil {
		return domain.StoredTrip{}, fmt.Errorf("decode snapshot %q: %w", t.Name, err)
	}
	return t, nil
}
