// Package insurance estimates homeowners insurance risk and premiums from
// static state and county risk tables.
package insurance

import (
	"strings"

	"github.com/homeward-labs/homeward/internal/rates"
)

// RiskLevel is a coarse three-step rating for a single peril.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFactors is the per-query peril profile. Derived from static tables on
// every call; never persisted.
type RiskFactors struct {
	FloodZone         bool      `json:"floodZone"`
	CoastalCounty     bool      `json:"coastalCounty"`
	WildfireRisk      RiskLevel `json:"wildfireRisk"`
	SevereWeatherRisk RiskLevel `json:"severeWeatherRisk"`
	EarthquakeRisk    RiskLevel `json:"earthquakeRisk"`
	RuralCounty       bool      `json:"ruralCounty"`
}

// BaseAnnualRate is the national-average homeowners insurance rate as a
// fraction of home value, before risk and county adjustments.
const BaseAnnualRate = 0.0035

// AssessRisk builds the peril profile for a location. State membership sets
// the baseline (high checked before medium); a supplied county can only
// upgrade a rating, never downgrade it.
func AssessRisk(zip, county, state string) RiskFactors {
	state = strings.ToUpper(strings.TrimSpace(state))

	factors := RiskFactors{
		WildfireRisk:      RiskLow,
		SevereWeatherRisk: RiskLow,
		EarthquakeRisk:    RiskLow,
	}

	factors.CoastalCounty = rates.CoastalStates[state]

	switch {
	case rates.WildfireHighStates[state]:
		factors.WildfireRisk = RiskHigh
	case rates.WildfireMediumStates[state]:
		factors.WildfireRisk = RiskMedium
	}

	switch {
	case rates.SevereWeatherHighStates[state]:
		factors.SevereWeatherRisk = RiskHigh
	case rates.SevereWeatherMediumStates[state]:
		factors.SevereWeatherRisk = RiskMedium
	}

	switch {
	case rates.EarthquakeHighStates[state]:
		factors.EarthquakeRisk = RiskHigh
	case rates.EarthquakeMediumStates[state]:
		factors.EarthquakeRisk = RiskMedium
	}

	if county != "" {
		key := rates.CountyKey(county, state)

		if rates.WildfireHighRiskCounties[key] {
			factors.WildfireRisk = RiskHigh
		}
		if rates.TornadoHighRiskCounties[key] {
			factors.SevereWeatherRisk = RiskHigh
		}
		if rates.EarthquakeHighRiskCounties[key] {
			factors.EarthquakeRisk = RiskHigh
		}
		if rates.FloodHighRiskCounties[key] || rates.HurricaneHighRiskCounties[key] {
			factors.FloodZone = true
		}

		factors.RuralCounty = rates.IsRuralCounty(county)
	}

	return factors
}

// RiskMultiplier composes the premium multiplier from a peril profile. Every
// applicable factor compounds; the result is not capped.
func RiskMultiplier(factors RiskFactors) float64 {
	multiplier := 1.0

	if factors.FloodZone {
		multiplier *= 1.3
	}
	if factors.CoastalCounty {
		multiplier *= 1.2
	}

	switch factors.WildfireRisk {
	case RiskHigh:
		multiplier *= 1.25
	case RiskMedium:
		multiplier *= 1.10
	}

	switch factors.SevereWeatherRisk {
	case RiskHigh:
		multiplier *= 1.15
	case RiskMedium:
		multiplier *= 1.08
	}

	switch factors.EarthquakeRisk {
	case RiskHigh:
		multiplier *= 1.20
	case RiskMedium:
		multiplier *= 1.10
	}

	return multiplier
}

// EstimateAnnualPremium applies the risk multiplier and the county adjustment
// to the base rate for a home value.
func EstimateAnnualPremium(homeValue float64, factors RiskFactors, county, state string) float64 {
	if homeValue <= 0 {
		return 0
	}
	return homeValue * BaseAnnualRate * RiskMultiplier(factors) * rates.CountyInsuranceAdjustment(county, state)
}
