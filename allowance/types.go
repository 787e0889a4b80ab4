package allowance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// INPUT
// =============================================================================

// Flags are the caller overrides recognized by the engine.
type Flags struct {
	SuppressMeals               bool
	SuppressLodging             bool
	ForceOvernightJustification bool

	// SegmentMode marks a synthetic sub-trip: times may be absent and border
	// crossings are neither required nor checked.
	SegmentMode bool
}

// TripInput is one trip as typed into the form. Dates are "dd/mm/yy" and
// times "hh:mm".
type TripInput struct {
	DepartureDate string
	ReturnDate    string
	DepartureTime string
	ReturnTime    string

	BorderCrossingOutbound string
	BorderCrossingReturn   string

	Destination     rates.Destination
	ProjectTypeCode string

	MileageDistanceKm money.Figure
	MileageRatePerKm  money.Figure
	LodgingUserAmount money.Figure

	HasDinnerReceipt         bool
	ResidencyDiscountApplies bool

	Flags Flags
}

// =============================================================================
// OUTPUT
// =============================================================================

// Leg identifies which part of a trip a result covers.
type Leg string

const (
	LegTrip        Leg = "trip"
	LegOutbound    Leg = "outbound"
	LegDestination Leg = "destination"
	LegReturn      Leg = "return"
)

type TripResult struct {
	Leg            Leg
	Normative      rates.Normative
	Country        string
	CountryIndex   int
	International  bool
	Start          time.Time
	End            time.Time
	Degraded       bool
	DegradedReason string

	// Meals
	MealUnits     decimal.Decimal
	MealUnitPrice decimal.Decimal
	MealAmount    decimal.Decimal

	// Nights
	Nights               int
	NightsIfOvernight    int
	NightsIfNotOvernight int
	NightsAmbiguous      bool
	AmbiguousSpan        *calendar.Span
	OvernightForced      bool

	// Lodging
	LodgingUnitPrice    decimal.Decimal
	NightsAmount        decimal.Decimal
	LodgingCapAmount    decimal.Decimal
	LodgingUserAmount   decimal.Decimal
	LodgingReimbursable decimal.Decimal

	// Mileage
	MileageDistanceKm decimal.Decimal
	MileageRateUsed   decimal.Decimal
	MileageAmount     decimal.Decimal

	IRPF IRPFResult

	// Segments is set when an international trip was split at its border
	// crossings. The parent's meal, night and IRPF totals are their sum.
	Segments []TripResult
}

// IRPFResult is the withholding breakdown of the meal allowance.
type IRPFResult struct {
	TaxableTotal decimal.Decimal
	Exemption    rates.ExemptionPair
	PerDay       []IRPFDay
}

type IRPFDay struct {
	DayIndex      int
	Date          calendar.Date
	Units         decimal.Decimal
	GrossAmount   decimal.Decimal
	ExemptAmount  decimal.Decimal
	TaxableAmount decimal.Decimal
	IsLastDay     bool
}

// Total is what the trip pays out: meals, reimbursable lodging and mileage.
func (r *TripResult) Total() decimal.Decimal {
	return money.Round(r.MealAmount.Add(r.LodgingReimbursable).Add(r.MileageAmount))
}

// Segmented returns true if the trip was split at border crossings.
func (r *TripResult) Segmented() bool { return len(r.Segments) > 0 }
