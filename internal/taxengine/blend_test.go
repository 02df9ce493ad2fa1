package taxengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homeward-labs/homeward/internal/models"
)

func blendFixtures() (*models.PropertyTaxRecord, *models.PropertyTaxRecord) {
	primary := &models.PropertyTaxRecord{
		HeadlineRate:       2.0,
		ApplicableRate:     1.8,
		EstimatedAnnualTax: 9000,
		Details:            models.TaxDetails{ExemptionTotal: 50000, TaxableValue: 450000},
		Confidence:         0.5,
		Sources:            []string{"AI estimate"},
	}
	fallback := &models.PropertyTaxRecord{
		HeadlineRate:       1.0,
		ApplicableRate:     1.0,
		EstimatedAnnualTax: 5000,
		Details:            models.TaxDetails{ExemptionTotal: 0, TaxableValue: 500000},
		Confidence:         FallbackConfidence,
		Sources:            []string{FallbackSource},
	}
	return primary, fallback
}

func TestShouldBlend(t *testing.T) {
	assert.False(t, ShouldBlend(0.2))
	assert.True(t, ShouldBlend(0.3))
	assert.True(t, ShouldBlend(0.5))
	assert.True(t, ShouldBlend(0.7))
	assert.False(t, ShouldBlend(0.9))
}

func TestBlend_WeightedAverage(t *testing.T) {
	primary, fallback := blendFixtures()

	blended := Blend(primary, fallback, 0.5)

	assert.InDelta(t, 1.5, blended.HeadlineRate, 1e-9)
	assert.InDelta(t, 1.4, blended.ApplicableRate, 1e-9)
	assert.InDelta(t, 7000, blended.EstimatedAnnualTax, 1e-9)
	assert.InDelta(t, 25000, blended.Details.ExemptionTotal, 1e-9)
	assert.InDelta(t, 475000, blended.Details.TaxableValue, 1e-9)
	assert.Equal(t, 0.5, blended.Confidence)
}

func TestBlend_FullConfidenceKeepsPrimary(t *testing.T) {
	primary, fallback := blendFixtures()

	blended := Blend(primary, fallback, 1.0)

	assert.Equal(t, primary.HeadlineRate, blended.HeadlineRate)
	assert.Equal(t, primary.EstimatedAnnualTax, blended.EstimatedAnnualTax)
}

func TestBlend_ZeroConfidenceKeepsFallback(t *testing.T) {
	primary, fallback := blendFixtures()

	blended := Blend(primary, fallback, 0)

	assert.Equal(t, fallback.HeadlineRate, blended.HeadlineRate)
	assert.Equal(t, fallback.EstimatedAnnualTax, blended.EstimatedAnnualTax)
}

func TestBlend_ClampsConfidence(t *testing.T) {
	primary, fallback := blendFixtures()

	low := Blend(primary, fallback, -0.5)
	assert.Equal(t, 0.0, low.Confidence)

	high := Blend(primary, fallback, 1.5)
	assert.Equal(t, 1.0, high.Confidence)
}

func TestBlend_UnionsSources(t *testing.T) {
	primary, fallback := blendFixtures()

	blended := Blend(primary, fallback, 0.5)

	assert.ElementsMatch(t, []string{"AI estimate", FallbackSource}, blended.Sources)
}

func TestBlend_DoesNotMutateInputs(t *testing.T) {
	primary, fallback := blendFixtures()
	originalRate := primary.HeadlineRate

	Blend(primary, fallback, 0.5)

	assert.Equal(t, originalRate, primary.HeadlineRate)
	assert.Equal(t, []string{"AI estimate"}, primary.Sources)
}
