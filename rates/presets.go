package rates

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
)

// =============================================================================
// PRESET TABLE
// =============================================================================

// DefaultTable returns the built-in table used when no rates file or stored
// version is available. Deployments are expected to load the current annex
// through PUT /api/rates.
func DefaultTable() *Table {
	return &Table{
		Countries: []string{
			"España", "Alemania", "Francia", "Portugal",
			"Reino Unido", "Estados Unidos", "Japón", "México",
		},
		Schedules: map[Normative]Schedule{
			NormativeRD: {
				MealPrices:    prices("41.17", "59.50", "59.50", "49.88", "66.11", "66.11", "103.95", "51.38"),
				LodgingPrices: prices("65.97", "132.82", "144.24", "84.14", "174.29", "192.32", "150.85", "102.17"),
			},
			NormativeDecreto: {
				MealPrices:    prices("53.34", "69.00", "69.00", "56.00", "80.00", "85.00", "113.61", "60.00"),
				LodgingPrices: prices("98.88", "150.00", "160.00", "100.00", "190.00", "210.00", "161.59", "120.00"),
			},
		},
		Exemptions: Exemptions{
			Domestic:      &ExemptionPair{LastDay: money.MustParse("26.67"), OtherDay: money.MustParse("53.34")},
			International: &ExemptionPair{LastDay: money.MustParse("48.08"), OtherDay: money.MustParse("91.35")},
		},
		RDProjectTypes: []string{"PID", "RTI", "OTRI"},
		MileageRate:    money.MustParse("0.26"),
	}
}

func prices(values ...string) []decimal.NullDecimal {
	out := make([]decimal.NullDecimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewNullDecimal(money.MustParse(v))
	}
	return out
}
