package allowance

import (
	"strings"
	"time"

	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
)

// tripSpan is a validated trip: parsed dates, clocks and optional crossings.
type tripSpan struct {
	depDate  calendar.Date
	retDate  calendar.Date
	depClock calendar.Clock
	retClock calendar.Clock

	crossOut  *calendar.Date
	crossBack *calendar.Date
}

func (s tripSpan) departure() time.Time { return calendar.Combine(s.depDate, &s.depClock) }
func (s tripSpan) arrival() time.Time   { return calendar.Combine(s.retDate, &s.retClock) }
func (s tripSpan) sameDay() bool        { return s.depDate.Equal(s.retDate) }

// =============================================================================
// VALIDATION GATE
// =============================================================================

// MaxTripDays bounds the calendar days one trip may touch, departure and
// return day included. Per-day breakdowns are sized by it.
const MaxTripDays = 366

// validate runs the checks in order and stops at the first failure:
//
//	(a) dates and times present and parseable
//	(b) international trips carry both crossings
//	(c) departure <= return, and at most MaxTripDays days
//	(d) outbound crossing <= return crossing
//	(e) crossings within [departure date, return date]
//
// In segment mode absent times mean midnight and (b), (d), (e) are skipped.
func validate(in TripInput, international bool) (tripSpan, *DegradedError) {
	var s tripSpan
	var ok bool

	if s.depDate, ok = calendar.ParseDate(in.DepartureDate); !ok {
		return s, degraded(ErrUnparseableInput, "departure_date")
	}
	if s.retDate, ok = calendar.ParseDate(in.ReturnDate); !ok {
		return s, degraded(ErrUnparseableInput, "return_date")
	}
	if s.depClock, ok = parseClock(in.DepartureTime, in.Flags.SegmentMode); !ok {
		return s, degraded(ErrUnparseableInput, "departure_time")
	}
	if s.retClock, ok = parseClock(in.ReturnTime, in.Flags.SegmentMode); !ok {
		return s, degraded(ErrUnparseableInput, "return_time")
	}

	checkCrossings := international && !in.Flags.SegmentMode
	if checkCrossings {
		if strings.TrimSpace(in.BorderCrossingOutbound) == "" {
			return s, degraded(ErrMissingBorderCrossing, "border_crossing_outbound")
		}
		if strings.TrimSpace(in.BorderCrossingReturn) == "" {
			return s, degraded(ErrMissingBorderCrossing, "border_crossing_return")
		}
		out, ok := calendar.ParseDate(in.BorderCrossingOutbound)
		if !ok {
			return s, degraded(ErrUnparseableInput, "border_crossing_outbound")
		}
		back, ok := calendar.ParseDate(in.BorderCrossingReturn)
		if !ok {
			return s, degraded(ErrUnparseableInput, "border_crossing_return")
		}
		s.crossOut, s.crossBack = &out, &back
	}

	if s.arrival().Before(s.departure()) {
		return s, degraded(ErrReturnBeforeDeparture, "return_date")
	}
	if calendar.DaysBetween(s.depDate, s.retDate)+1 > MaxTripDays {
		return s, degraded(ErrTripTooLong, "return_date")
	}

	if checkCrossings {
		if s.crossBack.Before(*s.crossOut) {
			return s, degraded(ErrCrossingOrder, "border_crossing_return")
		}
		trip := calendar.Span{Start: s.depDate, End: s.retDate}
		if !trip.Contains(*s.crossOut) {
			return s, degraded(ErrCrossingOutsideTrip, "border_crossing_outbound")
		}
		if !trip.Contains(*s.crossBack) {
			return s, degraded(ErrCrossingOutsideTrip, "border_crossing_return")
		}
	}
	return s, nil
}

// parseClock is lenient in segment mode: a missing or unreadable time is
// midnight.
func parseClock(s string, segmentMode bool) (calendar.Clock, bool) {
	c, ok := calendar.ParseClock(s)
	if !ok && segmentMode {
		return calendar.Midnight, true
	}
	return c, ok
}
