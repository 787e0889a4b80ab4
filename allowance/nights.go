package allowance

import (
	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
)

// =============================================================================
// NIGHTS
// =============================================================================

// A return at or after 07:00 means the traveler slept away; at or before
// 01:00 means they did not. Anything in between needs the traveler to say.
var (
	clockOvernight    = calendar.NewClock(7, 0)
	clockNotOvernight = calendar.NewClock(1, 0)
)

type nightCount struct {
	nights        int
	ifOvernight   int
	ifNot         int
	ambiguous     bool
	ambiguousSpan *calendar.Span
}

// countNights resolves the billable nights of a span. The ambiguous window
// defaults to "not overnight" until the traveler justifies it.
func countNights(s tripSpan) nightCount {
	base := calendar.DaysBetween(s.depDate, s.retDate)
	if base == 0 {
		return nightCount{}
	}

	n := nightCount{ifOvernight: base, ifNot: max(0, base-1)}
	switch {
	case s.retClock.AtLeast(clockOvernight):
		n.nights = n.ifOvernight
	case s.retClock.AtMost(clockNotOvernight):
		n.nights = n.ifNot
	default:
		n.nights = n.ifNot
		n.ambiguous = true
		n.ambiguousSpan = &calendar.Span{Start: s.retDate.AddDays(-1), End: s.retDate}
	}
	return n
}
