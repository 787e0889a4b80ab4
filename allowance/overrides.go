package allowance

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
)

// =============================================================================
// OVERRIDES
// =============================================================================

// applyOverrides applies the caller flags in a fixed order: meal and lodging
// suppression (independent of each other), then the forced overnight night.
// Segmented trips receive the flags on their segments.
func applyOverrides(r *TripResult, f Flags) {
	targets := []*TripResult{r}
	if r.Segmented() {
		targets = targets[:0]
		for i := range r.Segments {
			targets = append(targets, &r.Segments[i])
		}
	}

	for _, t := range targets {
		if f.SuppressMeals {
			t.suppressMeals()
		}
		if f.SuppressLodging {
			t.suppressLodging()
		}
	}

	if f.ForceOvernightJustification && !f.SuppressLodging {
		forceTarget(r).forceOvernight()
	}
}

// forceTarget picks the result that receives the justified night: the
// ambiguous segment, else the last one, or the trip itself when unsplit.
func forceTarget(r *TripResult) *TripResult {
	if !r.Segmented() {
		return r
	}
	for i := range r.Segments {
		if r.Segments[i].NightsAmbiguous {
			return &r.Segments[i]
		}
	}
	return &r.Segments[len(r.Segments)-1]
}

func (r *TripResult) suppressMeals() {
	r.MealUnits = decimal.Zero
	r.MealAmount = decimal.Zero
	r.IRPF.zero()
}

func (r *TripResult) suppressLodging() {
	r.Nights = 0
	r.NightsIfOvernight = 0
	r.NightsIfNotOvernight = 0
	r.NightsAmbiguous = false
	r.AmbiguousSpan = nil
	r.setLodging(decimal.Zero)
}

func (r *TripResult) forceOvernight() {
	r.Nights++
	r.OvernightForced = true
	r.setLodging(money.Round(r.NightsAmount.Add(r.LodgingUnitPrice)))
}

// setLodging sets the night amount, which is also the lodging cap.
func (r *TripResult) setLodging(amount decimal.Decimal) {
	r.NightsAmount = amount
	r.LodgingCapAmount = amount
	r.LodgingReimbursable = money.Min(r.LodgingUserAmount, amount)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// aggregate sets a segmented trip's totals to the sum of its segments.
func (r *TripResult) aggregate() {
	r.MealUnits = decimal.Zero
	r.MealAmount = decimal.Zero
	r.Nights, r.NightsIfOvernight, r.NightsIfNotOvernight = 0, 0, 0
	r.NightsAmbiguous, r.AmbiguousSpan, r.OvernightForced = false, nil, false
	nights := decimal.Zero
	taxable := decimal.Zero

	for i := range r.Segments {
		s := &r.Segments[i]
		r.MealUnits = r.MealUnits.Add(s.MealUnits)
		r.MealAmount = r.MealAmount.Add(s.MealAmount)
		r.Nights += s.Nights
		r.NightsIfOvernight += s.NightsIfOvernight
		r.NightsIfNotOvernight += s.NightsIfNotOvernight
		if s.NightsAmbiguous && !r.NightsAmbiguous {
			r.NightsAmbiguous = true
			r.AmbiguousSpan = s.AmbiguousSpan
		}
		r.OvernightForced = r.OvernightForced || s.OvernightForced
		nights = nights.Add(s.NightsAmount)
		taxable = taxable.Add(s.IRPF.TaxableTotal)
	}

	r.MealAmount = money.Round(r.MealAmount)
	r.setLodging(money.Round(nights))
	r.IRPF = IRPFResult{TaxableTotal: money.Round(taxable), Exemption: r.IRPF.Exemption}
}
