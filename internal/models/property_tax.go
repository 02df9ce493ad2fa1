package models

import (
	"time"
)

// Exemption describes a single property-tax exemption as either a fixed
// dollar amount or a percentage discount. Exactly one of Amount and
// DiscountPercent is meaningful for a given exemption.
type Exemption struct {
	Amount          float64 `json:"amount,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	Description     string  `json:"description"`
}

// ExemptionSet groups the exemptions that can apply to a query.
// Nil members mean the exemption does not apply.
type ExemptionSet struct {
	Homestead  *Exemption `json:"homestead,omitempty"`
	Senior     *Exemption `json:"senior,omitempty"`
	Veteran    *Exemption `json:"veteran,omitempty"`
	Disability *Exemption `json:"disability,omitempty"`
}

// TaxDetails carries the intermediate values behind an estimate so a cached
// record can be audited without recomputation.
type TaxDetails struct {
	AssessedValue  float64 `json:"assessedValue"`
	ExemptionTotal float64 `json:"exemptionTotal"`
	TaxableValue   float64 `json:"taxableValue"`
	Jurisdiction   string  `json:"jurisdiction"`
}

// PropertyTaxRecord is the persisted result of a property-tax resolution,
// keyed by the query fingerprint. At most one record exists per CacheKey
// (upsert semantics). The LocationQuery fields are denormalized onto the
// record for inspection.
type PropertyTaxRecord struct {
	CacheKey           string       `json:"cacheKey"`
	Query              LocationQuery `json:"query"`
	HeadlineRate       float64      `json:"headlineRate"`
	ApplicableRate     float64      `json:"applicableRate"`
	Exemptions         ExemptionSet `json:"exemptions"`
	EstimatedAnnualTax float64      `json:"estimatedAnnualTax"`
	Details            TaxDetails   `json:"details"`
	Confidence         float64      `json:"confidence"`
	Sources            []string     `json:"sources"`
	LastUpdated        time.Time    `json:"lastUpdated"`
	ExpiresAt          time.Time    `json:"expiresAt"`
}

// Expired reports whether the record has passed its expiry at the given time.
func (r *PropertyTaxRecord) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
