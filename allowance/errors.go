/*
errors.go - Degradation reasons for trip calculations

PURPOSE:
  A calculation never fails outright. When the input cannot be trusted the
  engine still returns a result (mileage kept, everything date-dependent
  zeroed) together with a *DegradedError naming why.

USAGE:
  res, err := engine.Calculate(in)
  if errors.Is(err, allowance.ErrDegraded) {
      // res is a partial result; err says which check failed
  }
  if errors.Is(err, allowance.ErrMissingBorderCrossing) { ... }
*/
package allowance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDegraded matches every degradation reason.
	ErrDegraded = errors.New("degraded calculation")

	// ErrUnparseableInput is returned when a date or time is absent or malformed.
	ErrUnparseableInput = errors.New("unparseable date or time")

	// ErrMissingBorderCrossing is returned for an international trip without
	// both border-crossing dates.
	ErrMissingBorderCrossing = errors.New("international trip requires both border crossings")

	// ErrReturnBeforeDeparture is returned when the return instant precedes departure.
	ErrReturnBeforeDeparture = errors.New("return before departure")

	// ErrCrossingOrder is returned when the return crossing precedes the outbound one.
	ErrCrossingOrder = errors.New("return crossing before outbound crossing")

	// ErrCrossingOutsideTrip is returned when a crossing falls outside the trip dates.
	ErrCrossingOutsideTrip = errors.New("border crossing outside trip dates")

	// ErrTripTooLong is returned when a trip spans more than MaxTripDays days.
	ErrTripTooLong = errors.New("trip longer than the allowed span")

	// ErrInternal is returned when a calculation panicked.
	ErrInternal = errors.New("internal calculation error")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// DegradedError reports why a calculation fell back to a partial result.
type DegradedError struct {
	Reason error
	Field  string
	Detail string
}

func (e *DegradedError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrDegraded, e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DegradedError) Unwrap() []error { return []error{ErrDegraded, e.Reason} }

func degraded(reason error, field string) *DegradedError {
	return &DegradedError{Reason: reason, Field: field}
}

// IsDegraded returns true if err reports a degraded calculation.
func IsDegraded(err error) bool { return errors.Is(err, ErrDegraded) }
