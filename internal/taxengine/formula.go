// Package taxengine contains the deterministic property-tax math: the
// state-table fallback formula and the confidence-weighted blend. Everything
// here is pure; fetch orchestration and caching live in the service layer.
package taxengine

import (
	"fmt"
	"strings"

	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/rates"
)

// FallbackConfidence is the fixed confidence assigned to formula-only
// estimates.
const FallbackConfidence = 0.3

// FallbackSource is the attribution string for formula-only estimates.
const FallbackSource = "Fallback calculation"

// stateOverrides lets a state replace the generic formula wholesale. The
// states flagged with HasSpecialFormula currently compute identically to the
// generic path, so no overrides are registered; this map is the hook point
// for when one diverges.
var stateOverrides = map[string]func(models.LocationQuery, rates.StateTaxConfig) *models.PropertyTaxRecord{}

// Fallback computes a property-tax estimate from the static state table.
// Dollar exemptions are subtracted first and the senior percentage discount
// is applied to what remains; the order is load-bearing.
func Fallback(q models.LocationQuery) *models.PropertyTaxRecord {
	cfg := rates.StateTax(q.State)

	if override, ok := stateOverrides[strings.ToUpper(strings.TrimSpace(q.State))]; ok {
		return override(q, cfg)
	}

	var exemptions models.ExemptionSet
	exemptionTotal := 0.0

	if q.IsPrimaryResidence && cfg.HomesteadExemption > 0 {
		exemptionTotal += cfg.HomesteadExemption
		exemptions.Homestead = &models.Exemption{
			Amount:      cfg.HomesteadExemption,
			Description: "Homestead exemption (primary residence)",
		}
	}

	if q.IsVeteran && cfg.VeteranExemption > 0 {
		exemptionTotal += cfg.VeteranExemption
		exemptions.Veteran = &models.Exemption{
			Amount:      cfg.VeteranExemption,
			Description: "Veteran exemption",
		}
	}

	seniorDiscountPct := 0.0
	if q.IsOver65 && cfg.SeniorDiscount > 0 {
		if cfg.SeniorDiscountIsDollar() {
			exemptionTotal += cfg.SeniorDiscount
			exemptions.Senior = &models.Exemption{
				Amount:      cfg.SeniorDiscount,
				Description: "Senior exemption (age 65+)",
			}
		} else {
			seniorDiscountPct = cfg.SeniorDiscount
			exemptions.Senior = &models.Exemption{
				DiscountPercent: cfg.SeniorDiscount,
				Description:     "Senior discount (age 65+)",
			}
		}
	}

	taxableValue := q.HomeValue - exemptionTotal
	if taxableValue < 0 {
		taxableValue = 0
	}
	if seniorDiscountPct > 0 {
		taxableValue *= 1 - seniorDiscountPct/100
	}

	annualTax := taxableValue * cfg.AverageRate / 100

	effectiveRate := 0.0
	if q.HomeValue > 0 {
		effectiveRate = annualTax / q.HomeValue * 100
	}

	return &models.PropertyTaxRecord{
		Query:              q,
		HeadlineRate:       cfg.AverageRate,
		ApplicableRate:     effectiveRate,
		Exemptions:         exemptions,
		EstimatedAnnualTax: annualTax,
		Details: models.TaxDetails{
			AssessedValue:  q.HomeValue,
			ExemptionTotal: exemptionTotal,
			TaxableValue:   taxableValue,
			Jurisdiction:   jurisdiction(q),
		},
		Confidence: FallbackConfidence,
		Sources:    []string{FallbackSource},
	}
}

func jurisdiction(q models.LocationQuery) string {
	state := strings.ToUpper(strings.TrimSpace(q.State))
	if q.County != "" {
		return fmt.Sprintf("%s County, %s", strings.TrimSpace(q.County), state)
	}
	return state
}
