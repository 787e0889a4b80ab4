package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/allowance"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
	"github.com/clb2clb2/sgtri-desp-sub000/store/memory"
)

func TestMetrics_ObserveCalculation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	engine := allowance.NewEngine(rates.DefaultTable())

	// GIVEN: one good trip, one degraded and one ambiguous
	for _, id := range []string{"japan-segments", "degraded-return-before-departure", "ambiguous-night"} {
		sc, ok := findScenario(id)
		require.True(t, ok)

		// WHEN: observing each calculation
		res, err := engine.Calculate(sc.Trip.ToInput())
		m.ObserveCalculation(res, err)
	}

	// THEN: outcomes, legs and ambiguity are counted
	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues("ok", "decreto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues("return_before_departure", "decreto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.segments.WithLabelValues("destination")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.segments.WithLabelValues("return")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ambiguousNights))
	assert.Zero(t, testutil.ToFloat64(m.overnightForced))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveCalculation(&allowance.TripResult{}, nil) })
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewHandler(memory.New(), rates.DefaultTable(), zerolog.Nop(), nil)
	router := NewRouter(h, []string{"https://forms.example.org"})

	// GIVEN: one calculation served
	sc, _ := findScenario("same-day-decreto")
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/"+sc.ID+"/run", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	// WHEN: scraping
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// THEN: the counter is exposed
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sgtri_trip_calculations_total{normative="decreto",outcome="ok"} 1`)
}
