/*
scenarios.go - Worked example trips

PURPOSE:

	Publishes a handful of trips with known results, calculated against the
	preset rates table. The travel form links to them from its help page and
	the handler tests use them as fixtures.

AVAILABLE SCENARIOS:

	same-day-decreto:                 10:00 to 23:00 in Spain, one unit
	japan-segments:                   Japan trip split at the border crossings
	degraded-return-before-departure: Bad dates, mileage still paid
	irpf-last-day:                    Three days, only the last one taxable
	ambiguous-night:                  Return at 03:00, night left to the traveler

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/japan-segments/run

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description and trip
 2. Pin its figures in scenarios_test.go

SEE ALSO:
  - handlers.go: ListScenarios, RunScenario handlers
  - rates/presets.go: Table the figures are computed with
*/
package api

import (
	"github.com/clb2clb2/sgtri-desp-sub000/allowance"
	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "same-day-decreto",
		Name:        "Same-Day Trip",
		Description: "Domestic day trip from 10:00 to 23:00 under Decreto 42/2025: midday and dinner halves",
		Category:    "meals",
		Trip: TripRequest{
			DepartureDate: "05/06/25",
			DepartureTime: "10:00",
			ReturnDate:    "05/06/25",
			ReturnTime:    "23:00",
			CountryName:   rates.DomesticCountry,
		},
	},
	{
		ID:          "japan-segments",
		Name:        "International Segments",
		Description: "Japan from 01/01 to 05/01, border crossed on 01/01 and 04/01: a Japan leg and a domestic return leg",
		Category:    "international",
		Trip: TripRequest{
			DepartureDate:          "01/01/25",
			DepartureTime:          "10:00",
			ReturnDate:             "05/01/25",
			ReturnTime:             "23:00",
			BorderCrossingOutbound: "01/01/25",
			BorderCrossingReturn:   "04/01/25",
			CountryName:            "Japón",
		},
	},
	{
		ID:          "degraded-return-before-departure",
		Name:        "Return Before Departure",
		Description: "Return date earlier than departure: allowances zeroed, 120 km of mileage still paid",
		Category:    "degraded",
		Trip: TripRequest{
			DepartureDate:     "10/03/25",
			DepartureTime:     "09:00",
			ReturnDate:        "08/03/25",
			ReturnTime:        "18:00",
			CountryName:       rates.DomesticCountry,
			MileageDistanceKm: money.Text("120 km"),
		},
	},
	{
		ID:          "irpf-last-day",
		Name:        "IRPF Day Position",
		Description: "Three full days in Spain: two days under the general exemption, the last one over its lower threshold",
		Category:    "irpf",
		Trip: TripRequest{
			DepartureDate: "02/04/25",
			DepartureTime: "09:00",
			ReturnDate:    "04/04/25",
			ReturnTime:    "22:30",
			CountryName:   rates.DomesticCountry,
		},
	},
	{
		ID:          "ambiguous-night",
		Name:        "Ambiguous Night",
		Description: "Return at 03:00 on the third day: one night by default, two if the traveler justifies the stay",
		Category:    "lodging",
		Trip: TripRequest{
			DepartureDate: "01/06/25",
			DepartureTime: "10:00",
			ReturnDate:    "03/06/25",
			ReturnTime:    "03:00",
			CountryName:   rates.DomesticCountry,
		},
	},
}

// presetEngine computes scenarios independently of the installed table.
var presetEngine = allowance.NewEngine(rates.DefaultTable())

func findScenario(id string) (ScenarioDTO, bool) {
	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return ScenarioDTO{}, false
}
