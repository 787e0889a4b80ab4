/*
factory.go - JSON to rates table conversion

PURPOSE:
  Rates tables are maintained by administration staff and change whenever a
  regulation updates its annex. They are edited as JSON, stored as versions
  in the database, and converted here into a Table.

JSON SCHEMA:
  {
    "countries": ["España", "Japón"],
    "normatives": {
      "rd":      {"meal_prices": [41.17, 103.95], "lodging_prices": [65.97, 150.85]},
      "decreto": {"meal_prices": [53.34, 113.61], "lodging_prices": [98.88, 161.59]}
    },
    "irpf_exemption": {
      "domestic":      [26.67, 53.34],
      "international": [48.08, 91.35]
    },
    "rd_project_types": ["PID"],
    "mileage_rate": 0.26
  }

  Exemption pairs are [last day, other day].

LENIENCY:
  Only syntactically invalid JSON is an error. Entries that are present but
  unusable (a string price, a negative price, a pair without two numbers)
  are kept as missing so the resolver falls back for that entry alone.
*/
package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TableJSON is the JSON representation of a rates table.
type TableJSON struct {
	Countries      []string                `json:"countries"`
	Normatives     map[string]ScheduleJSON `json:"normatives"`
	IRPFExemption  *ExemptionsJSON         `json:"irpf_exemption,omitempty"`
	RDProjectTypes []string                `json:"rd_project_types"`
	MileageRate    *float64                `json:"mileage_rate,omitempty"`
}

// ScheduleJSON holds raw price lists. Elements are kept untyped so one bad
// entry does not reject the whole table.
type ScheduleJSON struct {
	MealPrices    []any `json:"meal_prices"`
	LodgingPrices []any `json:"lodging_prices"`
}

type ExemptionsJSON struct {
	Domestic      []any `json:"domestic,omitempty"`
	International []any `json:"international,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseTable parses a JSON document into a Table.
func ParseTable(data []byte) (*Table, error) {
	var tj TableJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return nil, fmt.Errorf("failed to parse rates JSON: %w", err)
	}
	return FromJSON(tj), nil
}

// LoadFile reads and parses a rates table file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file %s: %w", path, err)
	}
	return ParseTable(data)
}

// FromJSON converts TableJSON to a Table.
func FromJSON(tj TableJSON) *Table {
	t := &Table{
		Countries:      append([]string(nil), tj.Countries...),
		Schedules:      make(map[Normative]Schedule),
		RDProjectTypes: append([]string(nil), tj.RDProjectTypes...),
	}

	for key, sj := range tj.Normatives {
		n := Normative(strings.ToLower(strings.TrimSpace(key)))
		if !n.Valid() {
			continue
		}
		t.Schedules[n] = Schedule{
			MealPrices:    parsePrices(sj.MealPrices),
			LodgingPrices: parsePrices(sj.LodgingPrices),
		}
	}

	if tj.IRPFExemption != nil {
		t.Exemptions.Domestic = parsePair(tj.IRPFExemption.Domestic)
		t.Exemptions.International = parsePair(tj.IRPFExemption.International)
	}

	if tj.MileageRate != nil && *tj.MileageRate > 0 {
		t.MileageRate = decimal.NewFromFloat(*tj.MileageRate)
	}
	return t
}

// ToJSON converts a Table back to its JSON representation. Missing entries
// are written as null. A nil table gives an empty document.
func ToJSON(t *Table) TableJSON {
	tj := TableJSON{
		Countries:      []string{},
		Normatives:     make(map[string]ScheduleJSON),
		RDProjectTypes: []string{},
	}
	if t == nil {
		return tj
	}
	tj.Countries = append(tj.Countries, t.Countries...)
	tj.RDProjectTypes = append(tj.RDProjectTypes, t.RDProjectTypes...)
	for n, s := range t.Schedules {
		tj.Normatives[string(n)] = ScheduleJSON{
			MealPrices:    formatPrices(s.MealPrices),
			LodgingPrices: formatPrices(s.LodgingPrices),
		}
	}
	if t.Exemptions.Domestic != nil || t.Exemptions.International != nil {
		tj.IRPFExemption = &ExemptionsJSON{
			Domestic:      formatPair(t.Exemptions.Domestic),
			International: formatPair(t.Exemptions.International),
		}
	}
	if t.MileageRate.IsPositive() {
		v, _ := t.MileageRate.Float64()
		tj.MileageRate = &v
	}
	return tj
}

// Marshal encodes a Table as indented JSON.
func Marshal(t *Table) ([]byte, error) {
	return json.MarshalIndent(ToJSON(t), "", "  ")
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parsePrices(raw []any) []decimal.NullDecimal {
	if raw == nil {
		return nil
	}
	out := make([]decimal.NullDecimal, len(raw))
	for i, v := range raw {
		if d, ok := toDecimal(v); ok {
			out[i] = decimal.NewNullDecimal(d)
		}
	}
	return out
}

func parsePair(raw []any) *ExemptionPair {
	if len(raw) != 2 {
		return nil
	}
	last, ok := toDecimal(raw[0])
	if !ok {
		return nil
	}
	other, ok := toDecimal(raw[1])
	if !ok {
		return nil
	}
	return &ExemptionPair{LastDay: last, OtherDay: other}
}

// toDecimal accepts JSON numbers and canonical numeric strings.
func toDecimal(v any) (decimal.Decimal, bool) {
	var d decimal.Decimal
	switch x := v.(type) {
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, false
		}
		d = parsed
	default:
		return decimal.Zero, false
	}
	if d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func formatPrices(list []decimal.NullDecimal) []any {
	out := make([]any, len(list))
	for i, p := range list {
		if p.Valid {
			f, _ := p.Decimal.Float64()
			out[i] = f
		}
	}
	return out
}

func formatPair(p *ExemptionPair) []any {
	if p == nil {
		return nil
	}
	last, _ := p.LastDay.Float64()
	other, _ := p.OtherDay.Float64()
	return []any{last, other}
}
