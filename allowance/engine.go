/*
engine.go - Travel allowance and IRPF withholding engine

PURPOSE:
  Turns one trip (dates, times, border crossings, destination, overrides)
  into meal units and amount, billable nights and the lodging cap, mileage,
  and a day-by-day IRPF breakdown, under RD 462/2002 or Decreto 42/2025.

PIPELINE:
  1. Resolve normative and prices from the rates table
  2. Validation gate (validate.go); on failure return a degraded result
  3. International trip with crossings? Split into legs (segments.go) and
     run each leg through steps 1-4
  4. Otherwise: meal units (meals.go), nights (nights.go), IRPF (irpf.go)
  5. Overrides (overrides.go), then sum segments into the parent

PURITY:
  The engine holds only a read-only table. Calculate has no side effects,
  never mutates its input, and returns identical results for identical
  input. It is safe for concurrent use.

USAGE:
  engine := allowance.NewEngine(rates.DefaultTable())
  res, err := engine.Calculate(allowance.TripInput{
      DepartureDate: "05/06/25", DepartureTime: "10:00",
      ReturnDate:    "05/06/25", ReturnTime:    "23:00",
      Destination:   rates.Domestic(),
  })
  // res.MealUnits == 1, res.MealAmount == 53.34, err == nil

SEE ALSO:
  - errors.go: Degradation reasons
  - rates/resolver.go: Price and exemption lookup
*/
package allowance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// Engine calculates trips against one rates table.
type Engine struct {
	rates *rates.Table
}

// NewEngine creates an engine. A nil table resolves every price to its
// fallback constant.
func NewEngine(table *rates.Table) *Engine {
	return &Engine{rates: table}
}

// Rates returns the table the engine calculates with.
func (e *Engine) Rates() *rates.Table { return e.rates }

// Calculate computes one trip. The result is never nil. A non-nil error is a
// *DegradedError: validation failed and the result is a best-effort partial
// one with mileage only.
func (e *Engine) Calculate(in TripInput) (res *TripResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			derr := &DegradedError{Reason: ErrInternal, Detail: fmt.Sprint(p)}
			res, err = e.degradedResult(in, LegTrip, derr), derr
		}
	}()

	res, derr := e.calculate(in, LegTrip, false)
	if derr != nil {
		return res, derr
	}
	return res, nil
}

// calculate runs the pipeline for a trip or one of its legs. carried is set
// for a leg whose first day was paid by the previous leg.
func (e *Engine) calculate(in TripInput, leg Leg, carried bool) (*TripResult, *DegradedError) {
	r := e.rates.Resolve(in.ProjectTypeCode, in.Destination)

	s, derr := validate(in, r.International)
	if derr != nil {
		return e.degradedResult(in, leg, derr), derr
	}

	res := newResult(in, leg, r)
	res.Start, res.End = s.departure(), s.arrival()

	if r.International && !in.Flags.SegmentMode {
		segments, derr := e.segment(in, s, r.Normative)
		if derr != nil {
			return e.degradedResult(in, leg, derr), derr
		}
		res.Segments = segments
		applyOverrides(res, in.Flags)
		res.aggregate()
		return res, nil
	}

	days := dayUnits(s, mealRules{normative: r.Normative, receipt: in.HasDinnerReceipt, carried: carried})
	res.MealUnits = sumUnits(days)
	res.MealAmount = mealAmount(res.MealUnits, r.MealPrice, in.ResidencyDiscountApplies)

	n := countNights(s)
	res.Nights = n.nights
	res.NightsIfOvernight = n.ifOvernight
	res.NightsIfNotOvernight = n.ifNot
	res.NightsAmbiguous = n.ambiguous
	res.AmbiguousSpan = n.ambiguousSpan
	res.setLodging(money.Round(decimal.NewFromInt(int64(n.nights)).Mul(r.LodgingPrice)))

	res.IRPF = withholding(days, r.MealPrice, r.Exemption, in.ResidencyDiscountApplies)

	applyOverrides(res, in.Flags)
	return res, nil
}

// newResult fills everything that does not depend on dates: resolved
// prices, the user's lodging amount and mileage.
func newResult(in TripInput, leg Leg, r rates.Resolution) *TripResult {
	res := &TripResult{
		Leg:               leg,
		Normative:         r.Normative,
		Country:           r.Country,
		CountryIndex:      r.CountryIndex,
		International:     r.International,
		MealUnits:         decimal.Zero,
		MealUnitPrice:     r.MealPrice,
		MealAmount:        decimal.Zero,
		LodgingUnitPrice:  r.LodgingPrice,
		NightsAmount:      decimal.Zero,
		LodgingCapAmount:  decimal.Zero,
		LodgingUserAmount: nonNegative(money.Round(in.LodgingUserAmount.Decimal())),
		IRPF:              IRPFResult{TaxableTotal: decimal.Zero, Exemption: r.Exemption},
	}
	res.LodgingReimbursable = decimal.Zero

	res.MileageDistanceKm = nonNegative(in.MileageDistanceKm.Decimal())
	res.MileageRateUsed = r.MileageRate
	if rate := in.MileageRatePerKm.Decimal(); rate.IsPositive() {
		res.MileageRateUsed = rate
	}
	res.MileageAmount = money.Round(res.MileageDistanceKm.Mul(res.MileageRateUsed))
	return res
}

// degradedResult keeps prices and mileage and zeroes everything that
// depends on dates.
func (e *Engine) degradedResult(in TripInput, leg Leg, derr *DegradedError) *TripResult {
	res := newResult(in, leg, e.rates.Resolve(in.ProjectTypeCode, in.Destination))
	res.Degraded = true
	res.DegradedReason = derr.Error()
	return res
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
