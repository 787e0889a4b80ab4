/*
date.go - Calendar dates and wall-clock times for trip calculations

PURPOSE:
  Parses the display formats used by the travel form ("dd/mm/yy" dates and
  "hh:mm" times) into structured values, and provides the whole-day
  arithmetic the allowance engine is built on.

PARSING CONTRACT:
  Parsers never return errors. Malformed or incomplete input yields ok=false
  so the caller can fall back to a degraded calculation instead of failing.

    "05/06/25"   -> 2025-06-05   (two-digit years are 2000+yy)
    "5/6/2025"   -> 2025-06-05
    "31/02/25"   -> not parseable (no such day)
    "01/01/1700" -> not parseable (years outside MinYear..MaxYear)
    "07:30"      -> 07:30
    "24:00"      -> not parseable

TIME ZONE:
  Everything is UTC. Trips are reimbursed by local wall-clock time, so there
  are no DST gaps to account for and a day is always 24 hours.

SEE ALSO:
  - span.go: Inclusive date ranges
  - allowance/validate.go: Uses these parsers as the validation gate
*/
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - A calendar day at midnight UTC
// =============================================================================

// Accepted years. Two-digit years always land inside the range.
const (
	MinYear = 1900
	MaxYear = 2099
)

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int          { return d.Time.Year() }
func (d Date) Month() time.Month  { return d.Time.Month() }
func (d Date) Day() int           { return d.Time.Day() }
func (d Date) IsZero() bool       { return d.Time.IsZero() }
func (d Date) String() string     { return d.Time.Format("2006-01-02") }

// Display formats the date the way the travel form shows it (dd/mm/yyyy).
// The result round-trips through ParseDate.
func (d Date) Display() string { return d.Time.Format("02/01/2006") }

// At returns the instant on this day at the given wall-clock time.
func (d Date) At(c Clock) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// =============================================================================
// CLOCK - Wall-clock time of day
// =============================================================================

type Clock struct {
	Hour   int
	Minute int
}

func NewClock(hour, minute int) Clock { return Clock{Hour: hour, Minute: minute} }

// Midnight is assumed whenever a date carries no time.
var Midnight = Clock{}

func (c Clock) Minutes() int              { return c.Hour*60 + c.Minute }
func (c Clock) Before(other Clock) bool   { return c.Minutes() < other.Minutes() }
func (c Clock) AtLeast(other Clock) bool  { return c.Minutes() >= other.Minutes() }
func (c Clock) AtMost(other Clock) bool   { return c.Minutes() <= other.Minutes() }
func (c Clock) String() string            { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// PARSERS
// =============================================================================

// ParseDate parses "dd/mm/yy" or "dd/mm/yyyy". Day and month may have one or
// two digits.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, false
	}
	day, ok := digits(parts[0], 1, 2)
	if !ok {
		return Date{}, false
	}
	month, ok := digits(parts[1], 1, 2)
	if !ok {
		return Date{}, false
	}
	var year int
	switch len(parts[2]) {
	case 2:
		yy, ok := digits(parts[2], 2, 2)
		if !ok {
			return Date{}, false
		}
		year = 2000 + yy
	case 4:
		yyyy, ok := digits(parts[2], 4, 4)
		if !ok {
			return Date{}, false
		}
		year = yyyy
	default:
		return Date{}, false
	}

	if year < MinYear || year > MaxYear || month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}
	d := NewDate(year, time.Month(month), day)
	// time.Date normalizes 31/02 into March; reject anything that moved.
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return Date{}, false
	}
	return d, true
}

// ParseClock parses "hh:mm" (hour may have one digit).
func ParseClock(s string) (Clock, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, false
	}
	hour, ok := digits(parts[0], 1, 2)
	if !ok || hour > 23 {
		return Clock{}, false
	}
	minute, ok := digits(parts[1], 2, 2)
	if !ok || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute}, true
}

func digits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// Combine joins a date and an optional time into one instant.
// A nil clock means midnight.
func Combine(d Date, c *Clock) time.Time {
	if c == nil {
		return d.At(Midnight)
	}
	return d.At(*c)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns whole days from one midnight to another, never negative.
// Dates are UTC midnights, so Unix seconds divide evenly into days.
func DaysBetween(from, to Date) int {
	n := int((to.Time.Unix() - from.Time.Unix()) / secondsPerDay)
	if n < 0 {
		return 0
	}
	return n
}
