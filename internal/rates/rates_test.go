package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTax_KnownState(t *testing.T) {
	cfg := StateTax("TX")

	assert.Equal(t, 1.60, cfg.AverageRate)
	assert.Equal(t, 100000.0, cfg.HomesteadExemption)
	assert.True(t, cfg.HasSpecialFormula)
}

func TestStateTax_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, StateTax("TX"), StateTax(" tx "))
}

func TestStateTax_UnknownStateFallsBackToDefault(t *testing.T) {
	cfg := StateTax("ZZ")

	assert.Equal(t, DefaultStateTaxConfig, cfg)
	assert.Equal(t, 1.07, cfg.AverageRate)
}

func TestSeniorDiscountIsDollar(t *testing.T) {
	// TX configures a $10,000 senior exemption
	assert.True(t, StateTax("TX").SeniorDiscountIsDollar())

	// WA configures a 60% senior discount
	assert.False(t, StateTax("WA").SeniorDiscountIsDollar())

	// No senior benefit at all
	assert.False(t, StateTax("NH").SeniorDiscountIsDollar())
}

func TestCountyInsuranceAdjustment_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.35, CountyInsuranceAdjustment("Miami-Dade", "FL"))
	assert.Equal(t, 1.25, CountyInsuranceAdjustment("Harris", "TX"))
	assert.Equal(t, 0.88, CountyInsuranceAdjustment("Story", "IA"))
}

func TestCountyInsuranceAdjustment_DefaultForUnknown(t *testing.T) {
	assert.Equal(t, 1.0, CountyInsuranceAdjustment("Nowhere", "TX"))
	assert.Equal(t, 1.0, CountyInsuranceAdjustment("", "TX"))
}

func TestCountyInsuranceAdjustment_NoCrossStateMatch(t *testing.T) {
	// Jefferson, TX is listed; Jefferson, CO is not
	assert.Equal(t, 1.24, CountyInsuranceAdjustment("Jefferson", "TX"))
	assert.Equal(t, 1.0, CountyInsuranceAdjustment("Jefferson", "CO"))
}

func TestCountyAdjustmentsWithinRange(t *testing.T) {
	for key, adj := range countyInsuranceAdjustments {
		assert.GreaterOrEqual(t, adj, 0.85, "adjustment for %s below range", key)
		assert.LessOrEqual(t, adj, 1.35, "adjustment for %s above range", key)
	}
}

func TestCountyKey(t *testing.T) {
	assert.Equal(t, "Harris, TX", CountyKey(" Harris ", "tx"))
}

func TestIsRuralCounty(t *testing.T) {
	assert.True(t, IsRuralCounty("Walnut Grove"))
	assert.True(t, IsRuralCounty("Cedar Creek"))
	assert.False(t, IsRuralCounty("Harris"))
	assert.False(t, IsRuralCounty(""))
}

func TestRiskSets_HighBeforeMediumDisjointness(t *testing.T) {
	for state := range WildfireHighStates {
		assert.False(t, WildfireMediumStates[state], "state %s in both wildfire tiers", state)
	}
	for state := range SevereWeatherHighStates {
		assert.False(t, SevereWeatherMediumStates[state], "state %s in both severe weather tiers", state)
	}
	for state := range EarthquakeHighStates {
		assert.False(t, EarthquakeMediumStates[state], "state %s in both earthquake tiers", state)
	}
}
