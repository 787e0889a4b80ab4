package allowance

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// IRPF WITHHOLDING
// =============================================================================

// withholding computes the taxable part of each day's meal allowance. The
// last day is measured against the last-day threshold, every other day
// against the other-day threshold.
func withholding(days []dayUnit, price decimal.Decimal, pair rates.ExemptionPair, residency bool) IRPFResult {
	res := IRPFResult{
		TaxableTotal: decimal.Zero,
		Exemption:    pair,
		PerDay:       make([]IRPFDay, 0, len(days)),
	}

	total := decimal.Zero
	for i, d := range days {
		gross := mealAmount(d.units, price, residency)
		threshold := pair.For(d.isLast)
		taxable := money.Round(decimal.Max(decimal.Zero, gross.Sub(threshold)))

		res.PerDay = append(res.PerDay, IRPFDay{
			DayIndex:      i,
			Date:          d.date,
			Units:         d.units,
			GrossAmount:   gross,
			ExemptAmount:  money.Min(gross, threshold),
			TaxableAmount: taxable,
			IsLastDay:     d.isLast,
		})
		total = total.Add(taxable)
	}
	res.TaxableTotal = money.Round(total)
	return res
}

// zero clears the amounts while keeping the day list, so the breakdown still
// shows which days the trip covered.
func (r *IRPFResult) zero() {
	r.TaxableTotal = decimal.Zero
	for i := range r.PerDay {
		d := &r.PerDay[i]
		d.Units = decimal.Zero
		d.GrossAmount = decimal.Zero
		d.ExemptAmount = decimal.Zero
		d.TaxableAmount = decimal.Zero
	}
}
