/*
store.go - Persistence interface for rates tables and form snapshots

PURPOSE:
  The calculation engine is pure; the only things the service persists are
  versions of the rates table and opaque snapshots of a filled-in travel
  form. Implementations can use SQLite or memory.

RATES VERSIONS:
  Rates tables are append-only. Every PUT /api/rates stores a new version
  and the latest one is loaded on startup. Older versions stay available so
  a settlement can be recalculated against the table it was made with.

SNAPSHOTS:
  A snapshot is an opaque JSON document keyed by id. The service never
  interprets it; saving the same id again replaces it.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - store/memory/memory.go: In-memory for tests and throwaway runs
*/
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// RatesRecord is one stored version of the rates table.
type RatesRecord struct {
	Version    int64
	ConfigJSON []byte
	CreatedAt  time.Time
}

// Snapshot is an opaque saved form.
type Snapshot struct {
	ID        string
	Payload   []byte
	UpdatedAt time.Time
}

type Store interface {
	// SaveRates appends a new rates version and returns it.
	SaveRates(ctx context.Context, configJSON []byte) (RatesRecord, error)

	// LatestRates returns the newest version, or ErrNotFound.
	LatestRates(ctx context.Context) (RatesRecord, error)

	// ListRates returns every version, newest first.
	ListRates(ctx context.Context) ([]RatesRecord, error)

	// SaveSnapshot inserts or replaces a snapshot.
	SaveSnapshot(ctx context.Context, id string, payload []byte) (Snapshot, error)

	// GetSnapshot returns a snapshot, or ErrNotFound.
	GetSnapshot(ctx context.Context, id string) (Snapshot, error)

	Close() error
}
