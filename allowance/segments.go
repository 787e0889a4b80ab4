package allowance

import (
	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// SEGMENTATION
// =============================================================================
//
// An international trip with both border crossings is split into up to three
// legs, each calculated on its own as a segment-mode trip:
//
//   outbound     departure@time   -> crossOut@08:00    domestic rates
//   destination  crossOut@08:00   -> crossBack@23:59   destination rates
//   return       crossBack@00:00  -> return@time       domestic rates
//
// The outbound leg exists only if the traveler left before the crossing day,
// the return leg only if they came back after the return-crossing day.

var (
	clockCrossOut  = calendar.NewClock(8, 0)
	clockCrossBack = calendar.NewClock(23, 59)
)

type legPlan struct {
	leg     Leg
	input   TripInput
	carried bool
}

// planLegs derives the synthetic sub-trips of a validated international trip.
func planLegs(in TripInput, s tripSpan, normative rates.Normative) []legPlan {
	base := TripInput{
		ProjectTypeCode:          in.ProjectTypeCode,
		ResidencyDiscountApplies: in.ResidencyDiscountApplies,
		Flags:                    Flags{SegmentMode: true},
	}

	var plans []legPlan
	if !s.depDate.Equal(*s.crossOut) {
		out := base
		out.DepartureDate, out.DepartureTime = s.depDate.Display(), s.depClock.String()
		out.ReturnDate, out.ReturnTime = s.crossOut.Display(), clockCrossOut.String()
		out.Destination = rates.Domestic()
		plans = append(plans, legPlan{leg: LegOutbound, input: out})
	}

	dest := base
	dest.DepartureDate, dest.DepartureTime = s.crossOut.Display(), clockCrossOut.String()
	dest.ReturnDate, dest.ReturnTime = s.crossBack.Display(), clockCrossBack.String()
	dest.Destination = in.Destination
	plans = append(plans, legPlan{leg: LegDestination, input: dest})

	if !s.crossBack.Equal(s.retDate) {
		back := base
		back.DepartureDate, back.DepartureTime = s.crossBack.Display(), calendar.Midnight.String()
		back.ReturnDate, back.ReturnTime = s.retDate.Display(), s.retClock.String()
		back.Destination = rates.Domestic()
		plans = append(plans, legPlan{leg: LegReturn, input: back, carried: true})
	}

	// Only the final leg sees the traveler's actual dinner receipt. Under the
	// decreto the receipt is not required, so earlier legs claim it; under
	// the RD earlier legs never do.
	for i := range plans {
		if i == len(plans)-1 {
			plans[i].input.HasDinnerReceipt = in.HasDinnerReceipt
		} else {
			plans[i].input.HasDinnerReceipt = normative == rates.NormativeDecreto
		}
	}
	return plans
}

// segment runs every leg and drops the empty ones. The final leg is always
// kept so the end of the trip stays visible. A leg that fails validation
// degrades the whole trip.
func (e *Engine) segment(in TripInput, s tripSpan, normative rates.Normative) ([]TripResult, *DegradedError) {
	plans := planLegs(in, s, normative)

	segments := make([]TripResult, 0, len(plans))
	for i, p := range plans {
		res, derr := e.calculate(p.input, p.leg, p.carried)
		if derr != nil {
			return nil, &DegradedError{Reason: derr.Reason, Field: derr.Field, Detail: string(p.leg) + " leg"}
		}
		if i < len(plans)-1 && res.empty() {
			continue
		}
		segments = append(segments, *res)
	}
	return segments, nil
}

func (r *TripResult) empty() bool {
	return r.Nights == 0 &&
		r.MealUnits.IsZero() &&
		r.MileageAmount.IsZero() &&
		!r.NightsAmbiguous
}
