package models

// LocationQuery describes a property-tax lookup request. It is treated as an
// immutable input: the cache fingerprint is derived from it and the resolved
// record denormalizes it for inspection.
type LocationQuery struct {
	State              string  `json:"state"`
	ZipCode            string  `json:"zipCode,omitempty"`
	City               string  `json:"city,omitempty"`
	County             string  `json:"county,omitempty"`
	IsPrimaryResidence bool    `json:"isPrimaryResidence"`
	IsOver65           bool    `json:"isOver65,omitempty"`
	IsVeteran          bool    `json:"isVeteran,omitempty"`
	IsDisabled         bool    `json:"isDisabled,omitempty"`
	HomeValue          float64 `json:"homeValue,omitempty"`
}

// ZipLocation is the resolved result of a ZIP code lookup. County is only
// populated by the primary provider; the keyless fallback supplies
// coordinates but no county.
type ZipLocation struct {
	ZipCode  string  `json:"zip_code"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	County   string  `json:"county,omitempty"`
	Timezone string  `json:"timezone,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}
