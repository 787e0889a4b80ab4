package api

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clb2clb2/sgtri-desp-sub000/allowance"
)

// Metrics counts calculations served over HTTP. The engine itself stays
// free of instrumentation.
type Metrics struct {
	registry        *prometheus.Registry
	calculations    *prometheus.CounterVec
	segments        *prometheus.CounterVec
	ambiguousNights prometheus.Counter
	overnightForced prometheus.Counter
}

// NewMetrics registers the collectors on reg (a fresh registry when nil).
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgtri_trip_calculations_total",
			Help: "Trip calculations by outcome (ok or degradation reason) and normative.",
		}, []string{"outcome", "normative"}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgtri_trip_segments_total",
			Help: "Legs reported for international trips split at border crossings.",
		}, []string{"leg"}),
		ambiguousNights: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgtri_trip_ambiguous_nights_total",
			Help: "Calculations whose return time fell in the ambiguous overnight window.",
		}),
		overnightForced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgtri_trip_overnight_forced_total",
			Help: "Calculations where the traveler justified an extra night.",
		}),
	}
	reg.MustRegister(m.calculations, m.segments, m.ambiguousNights, m.overnightForced)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation records one engine call.
func (m *Metrics) ObserveCalculation(res *allowance.TripResult, err error) {
	if m == nil || res == nil {
		return
	}
	m.calculations.WithLabelValues(outcome(err), string(res.Normative)).Inc()
	for _, s := range res.Segments {
		m.segments.WithLabelValues(string(s.Leg)).Inc()
	}
	if res.NightsAmbiguous {
		m.ambiguousNights.Inc()
	}
	if res.OvernightForced {
		m.overnightForced.Inc()
	}
}

// outcome maps an engine error to a low-cardinality label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, allowance.ErrUnparseableInput):
		return "unparseable_input"
	case errors.Is(err, allowance.ErrMissingBorderCrossing):
		return "missing_border_crossing"
	case errors.Is(err, allowance.ErrReturnBeforeDeparture):
		return "return_before_departure"
	case errors.Is(err, allowance.ErrCrossingOrder):
		return "crossing_order"
	case errors.Is(err, allowance.ErrCrossingOutsideTrip):
		return "crossing_outside_trip"
	case errors.Is(err, allowance.ErrTripTooLong):
		return "trip_too_long"
	case errors.Is(err, allowance.ErrInternal):
		return "internal"
	default:
		return "unknown"
	}
}
