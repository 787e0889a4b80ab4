/*
table.go - Per-diem rates table

PURPOSE:
  The rates table is exogenous configuration: per-country meal and lodging
  prices under each normative, the IRPF exemption thresholds, and the
  project-type codes that select RD 462/2002. A Table is never mutated after
  construction; callers that need a variant build a new one.

KEY CONCEPTS:
  - Normative: "rd" (RD 462/2002) or "decreto" (Decreto 42/2025)
  - Country index: position in Countries; index 0 is always the domestic
    country and selects the domestic exemption pair
  - Missing entries: any price or pair that is absent or malformed is
    reported as missing and replaced by a fixed fallback at resolution time

SEE ALSO:
  - resolver.go: Turns (project type, destination) into concrete prices
  - factory.go: JSON loading
  - presets.go: Built-in table
*/
package rates

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
)

// =============================================================================
// NORMATIVE
// =============================================================================

type Normative string

const (
	NormativeRD      Normative = "rd"
	NormativeDecreto Normative = "decreto"
)

func (n Normative) Valid() bool { return n == NormativeRD || n == NormativeDecreto }

// Label is the human name of the regulation.
func (n Normative) Label() string {
	switch n {
	case NormativeRD:
		return "RD 462/2002"
	case NormativeDecreto:
		return "Decreto 42/2025"
	default:
		return string(n)
	}
}

// =============================================================================
// FALLBACKS
// =============================================================================

var (
	FallbackMealPrice    = money.MustParse("50.55")
	FallbackLodgingPrice = money.MustParse("98.88")
	FallbackMileageRate  = money.MustParse("0.26")
	FallbackExemption    = ExemptionPair{
		LastDay:  money.MustParse("26.67"),
		OtherDay: money.MustParse("53.34"),
	}
)

// DomesticCountry names index 0 when the table carries no country list.
const DomesticCountry = "España"

// =============================================================================
// TABLE
// =============================================================================

// Schedule holds the prices of one normative, indexed by country.
// An invalid NullDecimal marks a malformed entry.
type Schedule struct {
	MealPrices    []decimal.NullDecimal
	LodgingPrices []decimal.NullDecimal
}

// ExemptionPair is the daily IRPF-exempt meal amount: one threshold for the
// last day of a trip and one for every other day.
type ExemptionPair struct {
	LastDay  decimal.Decimal
	OtherDay decimal.Decimal
}

// For returns the threshold for a day in the given position.
func (p ExemptionPair) For(isLastDay bool) decimal.Decimal {
	if isLastDay {
		return p.LastDay
	}
	return p.OtherDay
}

type Exemptions struct {
	Domestic      *ExemptionPair
	International *ExemptionPair
}

type Table struct {
	Countries      []string
	Schedules      map[Normative]Schedule
	Exemptions     Exemptions
	RDProjectTypes []string
	MileageRate    decimal.Decimal
}

// DomesticName is the name of country index 0.
func (t *Table) DomesticName() string {
	if t == nil || len(t.Countries) == 0 {
		return DomesticCountry
	}
	return t.Countries[0]
}

// CountryName returns the name at index, or "" when unknown.
func (t *Table) CountryName(index int) string {
	if index == 0 {
		return t.DomesticName()
	}
	if t == nil || index < 0 || index >= len(t.Countries) {
		return ""
	}
	return t.Countries[index]
}

// WithRDProjectTypes returns a copy whose RD code list is replaced.
// The receiver is left untouched.
func (t *Table) WithRDProjectTypes(codes []string) *Table {
	clone := Table{}
	if t != nil {
		clone = *t
	}
	clone.RDProjectTypes = append([]string(nil), codes...)
	return &clone
}

func price(list []decimal.NullDecimal, index int) (decimal.Decimal, bool) {
	if index < 0 || index >= len(list) || !list[index].Valid {
		return decimal.Zero, false
	}
	return list[index].Decimal, true
}
