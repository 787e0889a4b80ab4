package calendar

// =============================================================================
// SPAN - Inclusive range of calendar days
// =============================================================================

// Span is the range [Start, End] of calendar days touched by a trip or a part
// of one.
type Span struct {
	Start Date
	End   Date
}

// Contains returns true if the day is within [Start, End].
func (s Span) Contains(d Date) bool {
	return d.AfterOrEqual(s.Start) && d.BeforeOrEqual(s.End)
}

// Days returns every calendar day in the span, in order.
func (s Span) Days() []Date {
	days := make([]Date, 0, s.Nights()+1)
	for current := s.Start; current.BeforeOrEqual(s.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Nights is the midnight-to-midnight day difference (0 for a same-day span).
func (s Span) Nights() int { return DaysBetween(s.Start, s.End) }

func (s Span) String() string {
	return "[" + s.Start.String() + ", " + s.End.String() + "]"
}
