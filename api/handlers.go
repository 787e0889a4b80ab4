/*
handlers.go - HTTP API handlers for the travel allowance service

PURPOSE:
  Exposes the allowance engine to the travel form. Handles HTTP
  request/response and JSON serialization, and delegates to the engine.

ENDPOINTS:
  Trips:
    POST   /api/trips/calculate      Calculate one trip

  Rates:
    GET    /api/rates                Current rates table
    PUT    /api/rates                Store a new version and switch to it
    GET    /api/rates/versions       Stored versions, newest first

  Snapshots:
    POST   /api/snapshots            Save a form snapshot under a new id
    PUT    /api/snapshots/{id}       Save a form snapshot under an id
    GET    /api/snapshots/{id}       Fetch a form snapshot

  Scenarios:
    GET    /api/scenarios            List worked examples
    POST   /api/scenarios/{id}/run   Calculate one against the preset table

ARCHITECTURE:
  Handler holds the store and the current engine. The engine is swapped
  atomically when a new rates table is stored; a request that already took
  the engine finishes with the table it started with.

ERROR HANDLING:
  A degraded calculation is not an HTTP error: it returns 200 with
  status "degraded" and the reason. Errors are JSON with:
  - 400: Malformed body or id
  - 404: Snapshot or scenario not found
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Worked examples
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clb2clb2/sgtri-desp-sub000/allowance"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
	"github.com/clb2clb2/sgtri-desp-sub000/store"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store store.Store

	// RDProjectTypes, when set, replaces the RD code list of every table the
	// handler installs.
	RDProjectTypes []string

	log     zerolog.Logger
	metrics *Metrics

	mu     sync.RWMutex
	engine *allowance.Engine
}

// NewHandler creates a handler calculating against table.
func NewHandler(st store.Store, table *rates.Table, log zerolog.Logger, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	h := &Handler{Store: st, log: log, metrics: metrics}
	h.SetRates(table)
	return h
}

// SetRates switches every later calculation to table.
func (h *Handler) SetRates(table *rates.Table) {
	if len(h.RDProjectTypes) > 0 {
		table = table.WithRDProjectTypes(h.RDProjectTypes)
	}
	engine := allowance.NewEngine(table)

	h.mu.Lock()
	h.engine = engine
	h.mu.Unlock()
}

// Engine returns the current engine.
func (h *Handler) Engine() *allowance.Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}

// =============================================================================
// TRIPS
// =============================================================================

// CalculateTrip calculates one trip.
func (h *Handler) CalculateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, h.calculate(r, req))
}

func (h *Handler) calculate(r *http.Request, req TripRequest) TripResultDTO {
	res, err := h.Engine().Calculate(req.ToInput())
	h.metrics.ObserveCalculation(res, err)
	if err != nil {
		h.log.Debug().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("departure_date", req.DepartureDate).
			Str("return_date", req.ReturnDate).
			Msg("degraded trip calculation")
	}
	return toResultDTO(res)
}

// =============================================================================
// RATES
// =============================================================================

// GetRates returns the current rates table.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rates.ToJSON(h.Engine().Rates()))
}

// PutRates stores a new rates version and switches to it.
func (h *Handler) PutRates(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	table, err := rates.ParseTable(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rates table", err)
		return
	}

	canonical, err := rates.Marshal(table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode rates table", err)
		return
	}

	rec, err := h.Store.SaveRates(r.Context(), canonical)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save rates table", err)
		return
	}

	h.SetRates(table)
	h.log.Info().Int64("version", rec.Version).Int("countries", len(table.Countries)).Msg("rates table updated")

	writeJSON(w, http.StatusOK, RatesVersionDTO{Version: rec.Version, CreatedAt: formatTime(rec.CreatedAt)})
}

// ListRateVersions lists stored rates versions.
func (h *Handler) ListRateVersions(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rates versions", err)
		return
	}

	dtos := make([]RatesVersionDTO, len(records))
	for i, rec := range records {
		dtos[i] = RatesVersionDTO{Version: rec.Version, CreatedAt: formatTime(rec.CreatedAt)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// CreateSnapshot saves a snapshot under a fresh id.
func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	h.saveSnapshot(w, r, uuid.NewString(), http.StatusCreated)
}

// PutSnapshot saves a snapshot under the id in the path.
func (h *Handler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid snapshot id", err)
		return
	}
	h.saveSnapshot(w, r, id.String(), http.StatusOK)
}

func (h *Handler) saveSnapshot(w http.ResponseWriter, r *http.Request, id string, status int) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Snapshot must be a JSON document", nil)
		return
	}

	snap, err := h.Store.SaveSnapshot(r.Context(), id, body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save snapshot", err)
		return
	}
	writeJSON(w, status, SnapshotDTO{ID: snap.ID, UpdatedAt: formatTime(snap.UpdatedAt)})
}

// GetSnapshot returns the stored document unchanged.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid snapshot id", err)
		return
	}

	snap, err := h.Store.GetSnapshot(r.Context(), id.String())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Snapshot not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(snap.Payload)
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ListScenarios returns the worked examples.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario calculates a worked example against the preset table, so the
// published figures hold whatever table is installed.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario: %s", id), nil)
		return
	}

	res, err := presetEngine.Calculate(sc.Trip.ToInput())
	h.metrics.ObserveCalculation(res, err)
	writeJSON(w, http.StatusOK, ScenarioRunDTO{Scenario: sc, Result: toResultDTO(res)})
}

// =============================================================================
// HEALTH
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
