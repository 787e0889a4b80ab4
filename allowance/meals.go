package allowance

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// MEAL UNITS
// =============================================================================

var (
	unitNone = decimal.Zero
	unitHalf = decimal.New(5, -1)
	unitFull = decimal.NewFromInt(1)

	residencyFactor = decimal.New(8, -1)
)

var (
	clockMidday      = calendar.NewClock(14, 0)
	clockAfternoon   = calendar.NewClock(16, 0)
	clockDinner      = calendar.NewClock(22, 0)
	minSameDayRDTrip = 5 * 60 // minutes
)

// dayUnit is the meal allowance earned on one calendar day.
type dayUnit struct {
	date   calendar.Date
	units  decimal.Decimal
	isLast bool
}

// mealRules are the inputs that decide how many units a day earns.
type mealRules struct {
	normative rates.Normative
	receipt   bool

	// carried marks a leg whose first day was already paid by the previous
	// leg; that day earns nothing here.
	carried bool
}

// dayUnits returns one entry per calendar day of the span. Same-day trips
// collapse to a single entry.
func dayUnits(s tripSpan, r mealRules) []dayUnit {
	if s.sameDay() {
		return []dayUnit{{date: s.depDate, units: sameDayUnits(s, r), isLast: true}}
	}

	days := calendar.Span{Start: s.depDate, End: s.retDate}.Days()
	out := make([]dayUnit, 0, len(days))
	for i, d := range days {
		u := unitFull
		switch i {
		case 0:
			u = departureDayUnits(s.depClock)
			if r.carried {
				u = unitNone
			}
		case len(days) - 1:
			u = returnDayUnits(s.retClock, r)
		}
		out = append(out, dayUnit{date: d, units: u, isLast: i == len(days)-1})
	}
	return out
}

func sameDayUnits(s tripSpan, r mealRules) decimal.Decimal {
	midday := unitNone
	if s.depClock.Before(clockMidday) && s.retClock.AtLeast(clockAfternoon) {
		midday = unitHalf
	}

	dinner := unitNone
	if s.retClock.AtLeast(clockDinner) && (r.normative != rates.NormativeRD || r.receipt) {
		dinner = unitHalf
	}

	if r.normative == rates.NormativeRD {
		duration := s.arrival().Sub(s.departure()).Minutes()
		if duration < float64(minSameDayRDTrip) {
			return dinner
		}
	}
	return midday.Add(dinner)
}

func departureDayUnits(c calendar.Clock) decimal.Decimal {
	switch {
	case c.Before(clockMidday):
		return unitFull
	case c.Before(clockDinner):
		return unitHalf
	default:
		return unitNone
	}
}

func returnDayUnits(c calendar.Clock, r mealRules) decimal.Decimal {
	switch {
	case c.AtLeast(clockDinner) && (r.normative != rates.NormativeRD || r.receipt):
		return unitFull
	case c.AtLeast(clockMidday):
		return unitHalf
	default:
		return unitNone
	}
}

func sumUnits(days []dayUnit) decimal.Decimal {
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(d.units)
	}
	return total
}

// mealAmount prices a unit count, applying the residency discount.
func mealAmount(units, price decimal.Decimal, residency bool) decimal.Decimal {
	amount := units.Mul(price)
	if residency {
		amount = amount.Mul(residencyFactor)
	}
	return money.Round(amount)
}
