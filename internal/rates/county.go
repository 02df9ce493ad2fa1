package rates

import (
	"fmt"
	"strings"
)

// countyInsuranceAdjustments maps "County, ST" to a multiplier applied on top
// of state-average homeowners insurance rates. Range 0.85-1.35; counties
// without an entry use 1.0.
var countyInsuranceAdjustments = map[string]float64{
	"Miami-Dade, FL":     1.35,
	"Monroe, FL":         1.35,
	"Broward, FL":        1.30,
	"Palm Beach, FL":     1.28,
	"Lee, FL":            1.25,
	"Collier, FL":        1.22,
	"Galveston, TX":      1.30,
	"Harris, TX":         1.25,
	"Jefferson, TX":      1.24,
	"Cameron, TX":        1.22,
	"Montgomery, TX":     1.12,
	"Tarrant, TX":        1.10,
	"Orleans, LA":        1.32,
	"Plaquemines, LA":    1.30,
	"Terrebonne, LA":     1.26,
	"Charleston, SC":     1.22,
	"Dare, NC":           1.25,
	"Oklahoma, OK":       1.20,
	"Cleveland, OK":      1.18,
	"Sedgwick, KS":       1.15,
	"Butte, CA":          1.28,
	"Shasta, CA":         1.20,
	"Sonoma, CA":         1.18,
	"Napa, CA":           1.16,
	"Los Angeles, CA":    1.15,
	"San Bernardino, CA": 1.12,
	"Boulder, CO":        1.15,
	"Jackson, OR":        1.12,
	"King, WA":           1.08,
	"Cook, IL":           1.10,
	"Maricopa, AZ":       1.05,
	"Denver, CO":         1.02,
	"Lancaster, PA":      0.92,
	"Story, IA":          0.88,
	"Boone, MO":          0.90,
	"Chittenden, VT":     0.87,
	"Dane, WI":           0.95,
}

// CountyKey builds the canonical "County, ST" lookup key.
func CountyKey(county, state string) string {
	return fmt.Sprintf("%s, %s", strings.TrimSpace(county), strings.ToUpper(strings.TrimSpace(state)))
}

// CountyInsuranceAdjustment returns the insurance rate multiplier for a
// county. Exact match only; unclassified counties return 1.0.
func CountyInsuranceAdjustment(county, state string) float64 {
	if county == "" {
		return 1.0
	}
	if adj, ok := countyInsuranceAdjustments[CountyKey(county, state)]; ok {
		return adj
	}
	return 1.0
}

// ruralNamePatterns are tokens common in the names of rural counties.
var ruralNamePatterns = []string{
	"creek", "prairie", "grove", "forest", "valley", "springs", "ridge", "bluff",
}

// IsRuralCounty guesses whether a county is rural from its name. This is
// advisory metadata only; it is intentionally not folded into
// CountyInsuranceAdjustment.
func IsRuralCounty(county string) bool {
	name := strings.ToLower(strings.TrimSpace(county))
	if name == "" {
		return false
	}
	for _, pattern := range ruralNamePatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
