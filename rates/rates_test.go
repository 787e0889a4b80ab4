package rates_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/money"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
)

func dec(s string) decimal.Decimal { return money.MustParse(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

// =============================================================================
// NORMATIVE SELECTION
// =============================================================================

func TestNormativeFor(t *testing.T) {
	table := rates.DefaultTable()

	assert.Equal(t, rates.NormativeRD, table.NormativeFor("PID"))
	assert.Equal(t, rates.NormativeRD, table.NormativeFor(" otri "))
	assert.Equal(t, rates.NormativeDecreto, table.NormativeFor("G24"))
	assert.Equal(t, rates.NormativeDecreto, table.NormativeFor(""))

	var missing *rates.Table
	assert.Equal(t, rates.NormativeDecreto, missing.NormativeFor("PID"))
}

func TestWithRDProjectTypes_DoesNotMutate(t *testing.T) {
	table := rates.DefaultTable()
	custom := table.WithRDProjectTypes([]string{"G24"})

	assert.Equal(t, rates.NormativeRD, custom.NormativeFor("G24"))
	assert.Equal(t, rates.NormativeDecreto, custom.NormativeFor("PID"))
	assert.Equal(t, rates.NormativeRD, table.NormativeFor("PID"))
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolve_DomesticDecreto(t *testing.T) {
	r := rates.DefaultTable().Resolve("G24", rates.Domestic())

	assert.Equal(t, rates.NormativeDecreto, r.Normative)
	assert.Equal(t, 0, r.CountryIndex)
	assert.Equal(t, "España", r.Country)
	assert.False(t, r.International)
	assertDec(t, "53.34", r.MealPrice)
	assertDec(t, "98.88", r.LodgingPrice)
	assertDec(t, "26.67", r.Exemption.LastDay)
	assertDec(t, "53.34", r.Exemption.OtherDay)
}

func TestResolve_ByNameIgnoresDiacriticsAndCase(t *testing.T) {
	r := rates.DefaultTable().Resolve("", rates.DestinationName("  JAPON"))

	assert.Equal(t, 6, r.CountryIndex)
	assert.Equal(t, "Japón", r.Country)
	assert.True(t, r.International)
	assertDec(t, "113.61", r.MealPrice)
	assertDec(t, "48.08", r.Exemption.LastDay)
	assertDec(t, "91.35", r.Exemption.OtherDay)
}

func TestResolve_IndexTakesPrecedenceOverName(t *testing.T) {
	dest := rates.DestinationIndex(0)
	dest.Name = "Japón"

	r := rates.DefaultTable().Resolve("", dest)
	assert.False(t, r.International)
	assertDec(t, "53.34", r.MealPrice)
}

func TestResolve_RDPrices(t *testing.T) {
	r := rates.DefaultTable().Resolve("PID", rates.DestinationIndex(6))

	assert.Equal(t, rates.NormativeRD, r.Normative)
	assertDec(t, "103.95", r.MealPrice)
	assertDec(t, "150.85", r.LodgingPrice)
}

func TestResolve_Fallbacks(t *testing.T) {
	// GIVEN: a destination the table does not list
	r := rates.DefaultTable().Resolve("", rates.DestinationName("Atlantis"))

	// THEN: it is international, prices fall back, exemption falls back
	assert.True(t, r.International)
	assert.Equal(t, -1, r.CountryIndex)
	assert.Equal(t, "Atlantis", r.Country)
	assertDec(t, "50.55", r.MealPrice)
	assertDec(t, "98.88", r.LodgingPrice)
	assertDec(t, "26.67", r.Exemption.LastDay)
	assertDec(t, "53.34", r.Exemption.OtherDay)

	// GIVEN: no table at all
	var missing *rates.Table
	r = missing.Resolve("PID", rates.DestinationIndex(3))
	assert.Equal(t, rates.NormativeDecreto, r.Normative)
	assertDec(t, "50.55", r.MealPrice)
	assertDec(t, "0.26", r.MileageRate)
}

func TestIsInternational(t *testing.T) {
	table := rates.DefaultTable()

	assert.False(t, table.IsInternational(rates.Domestic()))
	assert.True(t, table.IsInternational(rates.DestinationIndex(2)))
	assert.False(t, table.IsInternational(rates.DestinationName("espana")))
	assert.True(t, table.IsInternational(rates.DestinationName("Francia")))
	assert.False(t, table.IsInternational(rates.Destination{}))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "japon", rates.NormalizeName("Japón"))
	assert.Equal(t, "espana", rates.NormalizeName(" ESPAÑA "))
	assert.Equal(t, "mexico", rates.NormalizeName("México"))
}

// =============================================================================
// JSON
// =============================================================================

func TestParseTable_Lenient(t *testing.T) {
	data := []byte(`{
		"countries": ["España", "Japón"],
		"normatives": {
			"decreto": {"meal_prices": [53.34, "oops"], "lodging_prices": [98.88]},
			"unknown": {"meal_prices": [1]}
		},
		"irpf_exemption": {"domestic": [26.67], "international": [48.08, 91.35]},
		"rd_project_types": ["PID"]
	}`)

	table, err := rates.ParseTable(data)
	require.NoError(t, err)
	assert.Len(t, table.Schedules, 1)
	assert.Nil(t, table.Exemptions.Domestic, "pair with one value is dropped")
	require.NotNil(t, table.Exemptions.International)

	// Malformed Japan meal price and missing Japan lodging price fall back.
	r := table.Resolve("", rates.DestinationIndex(1))
	assertDec(t, "50.55", r.MealPrice)
	assertDec(t, "98.88", r.LodgingPrice)
	assertDec(t, "48.08", r.Exemption.LastDay)

	// Domestic pair missing: fixed fallback pair.
	r = table.Resolve("", rates.Domestic())
	assertDec(t, "53.34", r.MealPrice)
	assertDec(t, "26.67", r.Exemption.LastDay)
	assertDec(t, "53.34", r.Exemption.OtherDay)
}

func TestParseTable_InvalidJSON(t *testing.T) {
	_, err := rates.ParseTable([]byte(`{"countries":`))
	assert.Error(t, err)
}

func TestMarshal_RoundTripsPreset(t *testing.T) {
	data, err := rates.Marshal(rates.DefaultTable())
	require.NoError(t, err)

	table, err := rates.ParseTable(data)
	require.NoError(t, err)

	want := rates.DefaultTable().Resolve("PID", rates.DestinationIndex(4))
	got := table.Resolve("PID", rates.DestinationIndex(4))
	assertDec(t, want.MealPrice.String(), got.MealPrice)
	assertDec(t, want.LodgingPrice.String(), got.LodgingPrice)
	assertDec(t, "0.26", got.MileageRate)
	assert.Equal(t, rates.DefaultTable().Countries, table.Countries)
}

func TestToJSON_NilTable(t *testing.T) {
	tj := rates.ToJSON(nil)

	assert.Empty(t, tj.Countries)
	assert.Empty(t, tj.Normatives)
	assert.Nil(t, tj.IRPFExemption)
	assert.Nil(t, tj.MileageRate)

	data, err := rates.Marshal(nil)
	require.NoError(t, err)
	back, err := rates.ParseTable(data)
	require.NoError(t, err)
	assert.Empty(t, back.Countries)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"countries":["España"],"mileage_rate":0.19}`), 0o600))

	table, err := rates.LoadFile(path)
	require.NoError(t, err)
	assertDec(t, "0.19", table.Resolve("", rates.Domestic()).MileageRate)

	_, err = rates.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
