package rates

// Per-peril state sets used by the insurance risk assessment. High is checked
// before medium; a state in neither set is low risk for that peril.

var CoastalStates = stateSet("FL", "TX", "LA", "MS", "AL", "GA", "SC", "NC", "VA", "MD", "DE", "NJ", "NY", "CT", "RI", "MA", "NH", "ME", "CA", "OR", "WA", "HI")

var WildfireHighStates = stateSet("CA", "OR", "CO")
var WildfireMediumStates = stateSet("WA", "AZ", "NM", "UT", "ID", "MT", "NV", "TX", "WY")

var SevereWeatherHighStates = stateSet("OK", "KS", "TX", "NE", "MO", "AL", "MS")
var SevereWeatherMediumStates = stateSet("AR", "IA", "IL", "IN", "TN", "KY", "GA", "SD", "LA")

var EarthquakeHighStates = stateSet("CA", "AK", "WA")
var EarthquakeMediumStates = stateSet("OR", "NV", "UT", "HI", "MO", "SC")

// Per-peril high-risk county lists, keyed "County, ST". A county hit upgrades
// the corresponding risk to high; it never downgrades a state-level rating.

var FloodHighRiskCounties = countySet(
	"Harris, TX", "Galveston, TX", "Jefferson, TX", "Cameron, TX",
	"Orleans, LA", "Jefferson, LA", "Plaquemines, LA", "Terrebonne, LA",
	"Miami-Dade, FL", "Broward, FL", "Monroe, FL", "Lee, FL", "Collier, FL",
	"Charleston, SC", "Horry, SC",
)

var HurricaneHighRiskCounties = countySet(
	"Miami-Dade, FL", "Monroe, FL", "Palm Beach, FL", "Broward, FL", "Lee, FL",
	"Galveston, TX", "Cameron, TX",
	"Charleston, SC", "Dare, NC",
	"Plaquemines, LA", "Terrebonne, LA",
)

var WildfireHighRiskCounties = countySet(
	"Butte, CA", "Shasta, CA", "Napa, CA", "Sonoma, CA", "El Dorado, CA",
	"Boulder, CO", "El Paso, CO",
	"Jackson, OR", "Deschutes, OR",
)

var TornadoHighRiskCounties = countySet(
	"Oklahoma, OK", "Cleveland, OK", "Canadian, OK",
	"Sedgwick, KS",
	"Tarrant, TX", "Dallas, TX",
	"Jefferson, AL", "Madison, AL",
)

var EarthquakeHighRiskCounties = countySet(
	"Los Angeles, CA", "San Francisco, CA", "Alameda, CA", "San Bernardino, CA", "Riverside, CA",
	"King, WA", "Pierce, WA",
	"Salt Lake, UT",
	"New Madrid, MO",
)

func stateSet(states ...string) map[string]bool {
	set := make(map[string]bool, len(states))
	for _, s := range states {
		set[s] = true
	}
	return set
}

func countySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
