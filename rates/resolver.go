package rates

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DESTINATION
// =============================================================================

// Destination selects a country either by table index or by name.
// Index takes precedence when set.
type Destination struct {
	Index *int
	Name  string
}

func DestinationIndex(i int) Destination { return Destination{Index: &i} }
func DestinationName(n string) Destination { return Destination{Name: n} }

// Domestic is the destination of every domestic leg.
func Domestic() Destination { return DestinationIndex(0) }

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolution is everything a calculation needs from the table for one
// (project type, destination) pair.
type Resolution struct {
	Normative     Normative
	CountryIndex  int // -1 when the destination matched nothing
	Country       string
	International bool
	MealPrice     decimal.Decimal
	LodgingPrice  decimal.Decimal
	Exemption     ExemptionPair
	MileageRate   decimal.Decimal
}

// NormativeFor selects "rd" when the project type is in the RD list and
// "decreto" for anything else, including no code at all.
func (t *Table) NormativeFor(projectType string) Normative {
	code := strings.TrimSpace(projectType)
	if t == nil || code == "" {
		return NormativeDecreto
	}
	if slices.ContainsFunc(t.RDProjectTypes, func(c string) bool {
		return strings.EqualFold(strings.TrimSpace(c), code)
	}) {
		return NormativeRD
	}
	return NormativeDecreto
}

// CountryIndex finds a country by normalized name.
func (t *Table) CountryIndex(name string) (int, bool) {
	want := NormalizeName(name)
	if want == "" {
		return -1, false
	}
	if want == NormalizeName(t.DomesticName()) {
		return 0, true
	}
	if t == nil {
		return -1, false
	}
	for i, c := range t.Countries {
		if NormalizeName(c) == want {
			return i, true
		}
	}
	return -1, false
}

// IsInternational reports whether a destination leaves the domestic country.
// A name that is not the domestic one counts as international even when the
// table does not list it.
func (t *Table) IsInternational(dest Destination) bool {
	if dest.Index != nil && *dest.Index >= 0 {
		return *dest.Index > 0
	}
	name := NormalizeName(dest.Name)
	return name != "" && name != NormalizeName(t.DomesticName())
}

// Resolve looks up prices and exemption thresholds. It never fails: missing
// entries fall back to fixed constants.
func (t *Table) Resolve(projectType string, dest Destination) Resolution {
	r := Resolution{
		Normative:     t.NormativeFor(projectType),
		CountryIndex:  -1,
		International: t.IsInternational(dest),
		MealPrice:     FallbackMealPrice,
		LodgingPrice:  FallbackLodgingPrice,
		Exemption:     FallbackExemption,
		MileageRate:   FallbackMileageRate,
	}

	if dest.Index != nil && *dest.Index >= 0 {
		r.CountryIndex = *dest.Index
	} else if i, ok := t.CountryIndex(dest.Name); ok {
		r.CountryIndex = i
	}
	r.Country = t.CountryName(r.CountryIndex)
	if r.Country == "" {
		r.Country = strings.TrimSpace(dest.Name)
	}

	if t == nil {
		return r
	}
	if t.MileageRate.IsPositive() {
		r.MileageRate = t.MileageRate
	}

	if sched, ok := t.Schedules[r.Normative]; ok {
		if p, ok := price(sched.MealPrices, r.CountryIndex); ok {
			r.MealPrice = p
		}
		if p, ok := price(sched.LodgingPrices, r.CountryIndex); ok {
			r.LodgingPrice = p
		}
	}

	// Exemption pair: explicit index first, then a matched name. An unmatched
	// name stays on the fallback pair.
	if r.CountryIndex >= 0 {
		pair := t.Exemptions.International
		if r.CountryIndex == 0 {
			pair = t.Exemptions.Domestic
		}
		if pair != nil {
			r.Exemption = *pair
		}
	}
	return r
}
