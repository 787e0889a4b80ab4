/*
money.go - Euro amounts and loosely formatted numeric input

PURPOSE:
  Every monetary value in a trip calculation is a decimal rounded to cents at
  the point it is computed. This file holds the rounding rule, the parser for
  the loosely formatted figures typed into the travel form, and the es-ES
  display format used in API responses.

LOOSE INPUT:
  Figures arrive either as JSON numbers or as text such as "1.500 km",
  "98,88 €" or "0,26 €/km". Text is parsed as:

    "1.234,56 €"  -> 1234.56   (comma present: dots group, comma is decimal)
    "1.234.567"   -> 1234567   (several dots: all group)
    "1.500 km"    -> 1500      (one dot + exactly three digits: groups)
    "0.260"       -> 0.26      (integer part 0: dot is decimal)
    "12.5"        -> 12.5
    "abc"         -> 0

SEE ALSO:
  - allowance/types.go: TripInput carries Figure fields
  - api/dto.go: Renders Format() strings next to numeric fields
*/
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Places is the precision every amount is rounded to.
const Places = 2

// Round rounds half away from zero to cents.
func Round(d decimal.Decimal) decimal.Decimal { return d.Round(Places) }

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MustParse parses a canonical decimal string, returning zero on error.
// Intended for constants.
func MustParse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// FIGURE - A number as the traveler typed it
// =============================================================================

// Figure is a quantity that may have been supplied as an exact number or as
// free text. The zero value is 0.
type Figure struct {
	text  string
	value decimal.Decimal
	exact bool
}

func Num(f float64) Figure         { return Figure{value: decimal.NewFromFloat(f), exact: true} }
func Dec(d decimal.Decimal) Figure { return Figure{value: d, exact: true} }
func Text(s string) Figure         { return Figure{text: s} }

// Decimal returns the parsed value (0 for unparseable text).
func (f Figure) Decimal() decimal.Decimal {
	if f.exact {
		return f.value
	}
	return Parse(f.text)
}

// Raw returns the original text, or the canonical number string.
func (f Figure) Raw() string {
	if f.exact {
		return f.value.String()
	}
	return f.text
}

func (f Figure) IsZero() bool { return f.Decimal().IsZero() }

func (f *Figure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Figure{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Text(s)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = Dec(d)
	return nil
}

func (f Figure) MarshalJSON() ([]byte, error) {
	if f.exact {
		return []byte(f.value.String()), nil
	}
	return json.Marshal(f.text)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads a loosely formatted number. Anything that is not a digit,
// separator or minus sign is dropped first, so unit suffixes never matter.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	switch {
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case strings.Count(cleaned, ".") == 1:
		intPart, frac, _ := strings.Cut(cleaned, ".")
		if len(frac) == 3 && strings.TrimLeft(intPart, "-0") != "" {
			cleaned = intPart + frac
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// DISPLAY
// =============================================================================

var printer = message.NewPrinter(language.Spanish)

// Format renders an amount in euros the way Spanish forms show it ("53,34 €").
func Format(d decimal.Decimal) string {
	f, _ := Round(d).Float64()
	return printer.Sprintf("%v €", number.Decimal(f, number.Scale(Places)))
}

// FormatUnits renders a meal-unit or night count ("4,5").
func FormatUnits(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(1)))
}
