/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Persists rates-table versions and opaque form snapshots. The calculation
  engine never touches the database; only the HTTP layer and startup do.

KEY TABLES:
  rates_tables: Append-only rates versions (version is autoincrement)
  snapshots:    One opaque JSON document per id, replaced on save

CONCURRENCY:
  Uses sync.RWMutex around statements. In-memory databases are pinned to a
  single connection because every new SQLite connection to ":memory:" opens
  a fresh, empty database.

WAL MODE:
  File databases are opened with WAL so readers don't block the writer.

USAGE:
  st, err := sqlite.New("./data/sgtri.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New().
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clb2clb2/sgtri-desp-sub000/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Rates tables (append-only, newest version wins)
	CREATE TABLE IF NOT EXISTS rates_tables (
		version INTEGER PRIMARY KEY AUTOINCREMENT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Opaque form snapshots
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RATES
// =============================================================================

// SaveRates appends a new rates version.
func (s *Store) SaveRates(ctx context.Context, configJSON []byte) (store.RatesRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rates_tables (config_json, created_at) VALUES (?, ?)`,
		string(configJSON), now.Format(time.RFC3339),
	)
	if err != nil {
		return store.RatesRecord{}, fmt.Errorf("insert rates: %w", err)
	}
	version, err := res.LastInsertId()
	if err != nil {
		return store.RatesRecord{}, fmt.Errorf("insert rates: %w", err)
	}

	return store.RatesRecord{Version: version, ConfigJSON: configJSON, CreatedAt: now}, nil
}

// LatestRates returns the newest rates version.
func (s *Store) LatestRates(ctx context.Context) (store.RatesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT version, config_json, created_at FROM rates_tables ORDER BY version DESC LIMIT 1`)
	rec, err := scanRates(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.RatesRecord{}, store.ErrNotFound
	}
	return rec, err
}

// ListRates returns every rates version, newest first.
func (s *Store) ListRates(ctx context.Context) ([]store.RatesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT version, config_json, created_at FROM rates_tables ORDER BY version DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RatesRecord
	for rows.Next() {
		rec, err := scanRates(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRates(row scanner) (store.RatesRecord, error) {
	var rec store.RatesRecord
	var configJSON, createdAt string
	if err := row.Scan(&rec.Version, &configJSON, &createdAt); err != nil {
		return store.RatesRecord{}, err
	}
	rec.ConfigJSON = []byte(configJSON)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return rec, nil
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// SaveSnapshot inserts or replaces a snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, id string, payload []byte) (store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO snapshots (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, id, string(payload), now.Format(time.RFC3339)); err != nil {
		return store.Snapshot{}, fmt.Errorf("save snapshot %s: %w", id, err)
	}
	return store.Snapshot{ID: id, Payload: payload, UpdatedAt: now}, nil
}

// GetSnapshot retrieves a snapshot by id.
func (s *Store) GetSnapshot(ctx context.Context, id string) (store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap store.Snapshot
	var payload, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, payload, updated_at FROM snapshots WHERE id = ?`, id,
	).Scan(&snap.ID, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, store.ErrNotFound
	}
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.Payload = []byte(payload)
	snap.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return snap, nil
}
