/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based model from the external contract consumed by
  the travel form.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NUMBERS:
  Request quantities are money.Figure, so the form can send either a JSON
  number or the text as typed ("1.500 km", "98,88 €"). Responses carry
  float64 amounts (already rounded to cents) plus es-ES display strings.

SEE ALSO:
  - handlers.go: Uses these types
  - allowance/types.go: Engine input and result
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/allowance"
	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// TRIP REQUEST
// =============================================================================

// TripRequest is one trip as sent by the form.
type TripRequest struct {
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ReturnDate    string `json:"return_date"`
	ReturnTime    string `json:"return_time"`

	BorderCrossingOutbound string `json:"border_crossing_outbound,omitempty"`
	BorderCrossingReturn   string `json:"border_crossing_return,omitempty"`

	// CountryIndex takes precedence over CountryName when present.
	CountryIndex *int   `json:"country_index,omitempty"`
	CountryName  string `json:"country_name,omitempty"`

	ProjectTypeCode string `json:"project_type_code,omitempty"`

	MileageDistanceKm money.Figure `json:"mileage_distance_km"`
	MileageRatePerKm  money.Figure `json:"mileage_rate_per_km"`
	LodgingUserAmount money.Figure `json:"lodging_user_amount"`

	HasDinnerReceipt         bool `json:"has_dinner_receipt"`
	ResidencyDiscountApplies bool `json:"residency_discount_applies"`

	Flags FlagsDTO `json:"flags"`
}

type FlagsDTO struct {
	SuppressMeals               bool `json:"suppress_meals"`
	SuppressLodging             bool `json:"suppress_lodging"`
	ForceOvernightJustification bool `json:"force_overnight_justification"`
	SegmentMode                 bool `json:"segment_mode"`
}

// ToInput converts the request into an engine input.
func (r TripRequest) ToInput() allowance.TripInput {
	dest := rates.Destination{Name: r.CountryName}
	if r.CountryIndex != nil {
		idx := *r.CountryIndex
		dest.Index = &idx
	}
	return allowance.TripInput{
		DepartureDate:            r.DepartureDate,
		DepartureTime:            r.DepartureTime,
		ReturnDate:               r.ReturnDate,
		ReturnTime:               r.ReturnTime,
		BorderCrossingOutbound:   r.BorderCrossingOutbound,
		BorderCrossingReturn:     r.BorderCrossingReturn,
		Destination:              dest,
		ProjectTypeCode:          r.ProjectTypeCode,
		MileageDistanceKm:        r.MileageDistanceKm,
		MileageRatePerKm:         r.MileageRatePerKm,
		LodgingUserAmount:        r.LodgingUserAmount,
		HasDinnerReceipt:         r.HasDinnerReceipt,
		ResidencyDiscountApplies: r.ResidencyDiscountApplies,
		Flags: allowance.Flags{
			SuppressMeals:               r.Flags.SuppressMeals,
			SuppressLodging:             r.Flags.SuppressLodging,
			ForceOvernightJustification: r.Flags.ForceOvernightJustification,
			SegmentMode:                 r.Flags.SegmentMode,
		},
	}
}

// =============================================================================
// TRIP RESULT
// =============================================================================

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// TripResultDTO represents a calculated trip or one of its legs.
type TripResultDTO struct {
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	Leg            string `json:"leg"`
	Normative      string `json:"normative"`
	NormativeLabel string `json:"normative_label"`
	Country        string `json:"country,omitempty"`
	CountryIndex   int    `json:"country_index"`
	International  bool   `json:"international"`
	Start          string `json:"start,omitempty"`
	End            string `json:"end,omitempty"`

	Meals   MealsDTO   `json:"meals"`
	Nights  NightsDTO  `json:"nights"`
	Lodging LodgingDTO `json:"lodging"`
	Mileage MileageDTO `json:"mileage"`
	IRPF    IRPFDTO    `json:"irpf"`

	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`

	Segments []TripResultDTO `json:"segments,omitempty"`
}

type MealsDTO struct {
	Units         float64 `json:"units"`
	UnitsDisplay  string  `json:"units_display"`
	UnitPrice     float64 `json:"unit_price"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
}

type NightsDTO struct {
	Count           int    `json:"count"`
	IfOvernight     int    `json:"if_overnight"`
	IfNotOvernight  int    `json:"if_not_overnight"`
	Ambiguous       bool   `json:"ambiguous"`
	AmbiguousFrom   string `json:"ambiguous_from,omitempty"`
	AmbiguousTo     string `json:"ambiguous_to,omitempty"`
	OvernightForced bool   `json:"overnight_forced"`
}

type LodgingDTO struct {
	UnitPrice    float64 `json:"unit_price"`
	NightsAmount float64 `json:"nights_amount"`
	CapAmount    float64 `json:"cap_amount"`
	UserAmount   float64 `json:"user_amount"`
	Reimbursable float64 `json:"reimbursable"`
	CapDisplay   string  `json:"cap_display"`
}

type MileageDTO struct {
	DistanceKm float64 `json:"distance_km"`
	RatePerKm  float64 `json:"rate_per_km"`
	Amount     float64 `json:"amount"`
}

type IRPFDTO struct {
	TaxableTotal      float64      `json:"taxable_total"`
	ExemptionLastDay  float64      `json:"exemption_last_day"`
	ExemptionOtherDay float64      `json:"exemption_other_day"`
	PerDay            []IRPFDayDTO `json:"per_day,omitempty"`
}

type IRPFDayDTO struct {
	DayIndex      int     `json:"day_index"`
	Date          string  `json:"date"`
	Units         float64 `json:"units"`
	GrossAmount   float64 `json:"gross_amount"`
	ExemptAmount  float64 `json:"exempt_amount"`
	TaxableAmount float64 `json:"taxable_amount"`
	IsLastDay     bool    `json:"is_last_day"`
}

func toResultDTO(r *allowance.TripResult) TripResultDTO {
	dto := TripResultDTO{
		Status:         StatusOK,
		Leg:            string(r.Leg),
		Normative:      string(r.Normative),
		NormativeLabel: r.Normative.Label(),
		Country:        r.Country,
		CountryIndex:   r.CountryIndex,
		International:  r.International,
		Meals: MealsDTO{
			Units:         f64(r.MealUnits),
			UnitsDisplay:  money.FormatUnits(r.MealUnits),
			UnitPrice:     f64(r.MealUnitPrice),
			Amount:        f64(r.MealAmount),
			AmountDisplay: money.Format(r.MealAmount),
		},
		Nights: NightsDTO{
			Count:           r.Nights,
			IfOvernight:     r.NightsIfOvernight,
			IfNotOvernight:  r.NightsIfNotOvernight,
			Ambiguous:       r.NightsAmbiguous,
			OvernightForced: r.OvernightForced,
		},
		Lodging: LodgingDTO{
			UnitPrice:    f64(r.LodgingUnitPrice),
			NightsAmount: f64(r.NightsAmount),
			CapAmount:    f64(r.LodgingCapAmount),
			UserAmount:   f64(r.LodgingUserAmount),
			Reimbursable: f64(r.LodgingReimbursable),
			CapDisplay:   money.Format(r.LodgingCapAmount),
		},
		Mileage: MileageDTO{
			DistanceKm: f64(r.MileageDistanceKm),
			RatePerKm:  f64(r.MileageRateUsed),
			Amount:     f64(r.MileageAmount),
		},
		IRPF: IRPFDTO{
			TaxableTotal:      f64(r.IRPF.TaxableTotal),
			ExemptionLastDay:  f64(r.IRPF.Exemption.LastDay),
			ExemptionOtherDay: f64(r.IRPF.Exemption.OtherDay),
		},
		Total:        f64(r.Total()),
		TotalDisplay: money.Format(r.Total()),
	}

	if r.Degraded {
		dto.Status = StatusDegraded
		dto.Reason = r.DegradedReason
	}
	if !r.Start.IsZero() {
		dto.Start = r.Start.Format(dateTimeLayout)
		dto.End = r.End.Format(dateTimeLayout)
	}
	if r.AmbiguousSpan != nil {
		dto.Nights.AmbiguousFrom = r.AmbiguousSpan.Start.Display()
		dto.Nights.AmbiguousTo = r.AmbiguousSpan.End.Display()
	}
	for _, d := range r.IRPF.PerDay {
		dto.IRPF.PerDay = append(dto.IRPF.PerDay, IRPFDayDTO{
			DayIndex:      d.DayIndex,
			Date:          d.Date.Display(),
			Units:         f64(d.Units),
			GrossAmount:   f64(d.GrossAmount),
			ExemptAmount:  f64(d.ExemptAmount),
			TaxableAmount: f64(d.TaxableAmount),
			IsLastDay:     d.IsLastDay,
		})
	}
	for i := range r.Segments {
		dto.Segments = append(dto.Segments, toResultDTO(&r.Segments[i]))
	}
	return dto
}

const dateTimeLayout = "02/01/2006 15:04"

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// =============================================================================
// RATES, SNAPSHOTS, SCENARIOS
// =============================================================================

// RatesVersionDTO describes one stored rates version.
type RatesVersionDTO struct {
	Version   int64  `json:"version"`
	CreatedAt string `json:"created_at"`
}

// SnapshotDTO is returned after saving a snapshot.
type SnapshotDTO struct {
	ID        string `json:"id"`
	UpdatedAt string `json:"updated_at"`
}

// ScenarioDTO represents a worked example trip.
type ScenarioDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Trip        TripRequest `json:"trip"`
}

// ScenarioRunDTO is a scenario together with its calculated result.
type ScenarioRunDTO struct {
	Scenario ScenarioDTO   `json:"scenario"`
	Result   TripResultDTO `json:"result"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
