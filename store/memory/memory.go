// Package memory provides an in-memory store.Store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/clb2clb2/sgtri-desp-sub000/store"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	rates     []store.RatesRecord
	snapshots map[string]store.Snapshot
	now       func() time.Time
}

func New() *Memory {
	return &Memory{
		snapshots: make(map[string]store.Snapshot),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SaveRates appends a version. Versions start at 1.
func (m *Memory) SaveRates(_ context.Context, configJSON []byte) (store.RatesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := store.RatesRecord{
		Version:    int64(len(m.rates) + 1),
		ConfigJSON: slices.Clone(configJSON),
		CreatedAt:  m.now(),
	}
	m.rates = append(m.rates, rec)
	return copyRates(rec), nil
}

func (m *Memory) LatestRates(_ context.Context) (store.RatesRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.rates) == 0 {
		return store.RatesRecord{}, store.ErrNotFound
	}
	return copyRates(m.rates[len(m.rates)-1]), nil
}

func (m *Memory) ListRates(_ context.Context) ([]store.RatesRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.RatesRecord, 0, len(m.rates))
	for i := len(m.rates) - 1; i >= 0; i-- {
		out = append(out, copyRates(m.rates[i]))
	}
	return out, nil
}

func (m *Memory) SaveSnapshot(_ context.Context, id string, payload []byte) (store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := store.Snapshot{ID: id, Payload: slices.Clone(payload), UpdatedAt: m.now()}
	m.snapshots[id] = snap
	return copySnapshot(snap), nil
}

func (m *Memory) GetSnapshot(_ context.Context, id string) (store.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[id]
	if !ok {
		return store.Snapshot{}, store.ErrNotFound
	}
	return copySnapshot(snap), nil
}

func (m *Memory) Close() error { return nil }

// Copies keep callers from mutating stored bytes.
func copyRates(r store.RatesRecord) store.RatesRecord {
	r.ConfigJSON = slices.Clone(r.ConfigJSON)
	return r
}

func copySnapshot(s store.Snapshot) store.Snapshot {
	s.Payload = slices.Clone(s.Payload)
	return s
}
