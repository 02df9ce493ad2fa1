package insurance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessRisk_DefaultsToLow(t *testing.T) {
	factors := AssessRisk("03301", "", "NH")

	assert.Equal(t, RiskLow, factors.WildfireRisk)
	assert.Equal(t, RiskLow, factors.SevereWeatherRisk)
	assert.Equal(t, RiskLow, factors.EarthquakeRisk)
	assert.False(t, factors.FloodZone)
	// NH is on the coastal list
	assert.True(t, factors.CoastalCounty)
}

func TestAssessRisk_InlandState(t *testing.T) {
	factors := AssessRisk("80301", "", "CO")

	assert.False(t, factors.CoastalCounty)
	assert.Equal(t, RiskHigh, factors.WildfireRisk)
	assert.Equal(t, RiskLow, factors.SevereWeatherRisk)
	assert.Equal(t, RiskLow, factors.EarthquakeRisk)
}

func TestAssessRisk_StateTiers(t *testing.T) {
	// AZ is wildfire-medium, not high
	factors := AssessRisk("85001", "", "AZ")
	assert.Equal(t, RiskMedium, factors.WildfireRisk)

	// OK is severe-weather-high
	factors = AssessRisk("73101", "", "OK")
	assert.Equal(t, RiskHigh, factors.SevereWeatherRisk)

	// NV is earthquake-medium
	factors = AssessRisk("89101", "", "NV")
	assert.Equal(t, RiskMedium, factors.EarthquakeRisk)
}

func TestAssessRisk_CountyUpgradesNeverDowngrades(t *testing.T) {
	// TX is wildfire-medium at the state level; Tarrant is a tornado county,
	// so severe weather upgrades to high while wildfire stays medium.
	factors := AssessRisk("76101", "Tarrant", "TX")

	assert.Equal(t, RiskHigh, factors.SevereWeatherRisk)
	assert.Equal(t, RiskMedium, factors.WildfireRisk)
}

func TestAssessRisk_FloodZoneFromEitherList(t *testing.T) {
	// Harris, TX is on the flood list but not the hurricane list
	factors := AssessRisk("77001", "Harris", "TX")
	assert.True(t, factors.FloodZone)

	// Dare, NC is on the hurricane list but not the flood list
	factors = AssessRisk("27959", "Dare", "NC")
	assert.True(t, factors.FloodZone)

	// Denver, CO is on neither
	factors = AssessRisk("80201", "Denver", "CO")
	assert.False(t, factors.FloodZone)
}

func TestAssessRisk_RuralAdvisoryFlag(t *testing.T) {
	factors := AssessRisk("00000", "Cedar Creek", "TX")
	assert.True(t, factors.RuralCounty)
}

func TestRiskMultiplier_AllLow(t *testing.T) {
	factors := RiskFactors{
		WildfireRisk:      RiskLow,
		SevereWeatherRisk: RiskLow,
		EarthquakeRisk:    RiskLow,
	}

	assert.Equal(t, 1.0, RiskMultiplier(factors))
}

func TestRiskMultiplier_CompoundExample(t *testing.T) {
	// flood × coastal × wildfire-high = 1.3 × 1.2 × 1.25 = 1.95
	factors := RiskFactors{
		FloodZone:         true,
		CoastalCounty:     true,
		WildfireRisk:      RiskHigh,
		SevereWeatherRisk: RiskLow,
		EarthquakeRisk:    RiskLow,
	}

	assert.InDelta(t, 1.95, RiskMultiplier(factors), 1e-9)
}

func TestRiskMultiplier_EveryFactorCompounds(t *testing.T) {
	factors := RiskFactors{
		FloodZone:         true,
		CoastalCounty:     true,
		WildfireRisk:      RiskHigh,
		SevereWeatherRisk: RiskHigh,
		EarthquakeRisk:    RiskHigh,
	}

	expected := 1.3 * 1.2 * 1.25 * 1.15 * 1.20
	assert.InDelta(t, expected, RiskMultiplier(factors), 1e-9)
}

func TestRiskMultiplier_MediumTiers(t *testing.T) {
	factors := RiskFactors{
		WildfireRisk:      RiskMedium,
		SevereWeatherRisk: RiskMedium,
		EarthquakeRisk:    RiskMedium,
	}

	expected := 1.10 * 1.08 * 1.10
	assert.InDelta(t, expected, RiskMultiplier(factors), 1e-9)
}

func TestEstimateAnnualPremium(t *testing.T) {
	factors := RiskFactors{
		WildfireRisk:      RiskLow,
		SevereWeatherRisk: RiskLow,
		EarthquakeRisk:    RiskLow,
	}

	// Unclassified county: base rate only
	premium := EstimateAnnualPremium(400000, factors, "Nowhere", "PA")
	assert.InDelta(t, 400000*BaseAnnualRate, premium, 1e-6)

	// County adjustment applies on top
	premium = EstimateAnnualPremium(400000, factors, "Lancaster", "PA")
	assert.InDelta(t, 400000*BaseAnnualRate*0.92, premium, 1e-6)
}

func TestEstimateAnnualPremium_ZeroHomeValue(t *testing.T) {
	assert.Equal(t, 0.0, EstimateAnnualPremium(0, RiskFactors{}, "", "TX"))
}
