package taxengine

import (
	"github.com/homeward-labs/homeward/internal/models"
)

// Confidence band inside which an AI estimate is blended with the formula
// rather than trusted outright.
const (
	BlendLowerBound = 0.3
	BlendUpperBound = 0.7
)

// ShouldBlend reports whether an estimate with the given confidence should be
// averaged with the deterministic formula. Above the band the estimate stands
// alone; below it the formula alone is more trustworthy.
func ShouldBlend(confidence float64) bool {
	return confidence >= BlendLowerBound && confidence <= BlendUpperBound
}

// Blend combines a primary (AI) estimate with the formula estimate, weighting
// the primary by its confidence. It is a pure function of its inputs: rates
// and dollar amounts are confidence-weighted averages, sources are unioned,
// and exemptions follow the primary estimate.
func Blend(primary, fallback *models.PropertyTaxRecord, confidence float64) *models.PropertyTaxRecord {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	w := confidence
	mix := func(a, b float64) float64 {
		return a*w + b*(1-w)
	}

	blended := *primary
	blended.HeadlineRate = mix(primary.HeadlineRate, fallback.HeadlineRate)
	blended.ApplicableRate = mix(primary.ApplicableRate, fallback.ApplicableRate)
	blended.EstimatedAnnualTax = mix(primary.EstimatedAnnualTax, fallback.EstimatedAnnualTax)
	blended.Details.ExemptionTotal = mix(primary.Details.ExemptionTotal, fallback.Details.ExemptionTotal)
	blended.Details.TaxableValue = mix(primary.Details.TaxableValue, fallback.Details.TaxableValue)
	blended.Confidence = confidence
	blended.Sources = unionSources(primary.Sources, fallback.Sources)

	return &blended
}

func unionSources(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			union = append(union, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			union = append(union, s)
		}
	}
	return union
}
