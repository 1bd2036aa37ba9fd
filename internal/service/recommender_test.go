package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

func TestRecommendationGenerator_Generate_LowRisk(t *testing.T) {
	generator := NewRecommendationGenerator(testLogger())

	recommendations := generator.Generate(domain.RISK_LOW, nil)

	assert.Equal(t, []string{
		"Continue routine antenatal care",
		"Regular antenatal check-ups as scheduled",
		"Emergency contact: Seek help if severe headache, vision changes, or bleeding",
	}, recommendations)
}

func TestRecommendationGenerator_Generate_HighRiskOrder(t *testing.T) {
	generator := NewRecommendationGenerator(testLogger())

	recommendations := generator.Generate(domain.RISK_HIGH, nil)

	require.GreaterOrEqual(t, len(recommendations), 3)
	assert.Equal(t, "Immediate medical consultation required", recommendations[0])
	assert.Equal(t, "Comprehensive prenatal testing recommended", recommendations[1])
	assert.Equal(t, "Consider referral to specialist facility", recommendations[2])
}

func TestRecommendationGenerator_Generate_FactorAdvice(t *testing.T) {
	generator := NewRecommendationGenerator(testLogger())

	factors := []domain.ContributingFactor{
		{Factor: domain.SEVERE_ANEMIA},
		{Factor: domain.HYPERTENSION},
		{Factor: domain.PREVIOUS_COMPLICATIONS},
	}
	recommendations := generator.Generate(domain.RISK_HIGH, factors)

	assert.Contains(t, recommendations, "Iron supplementation and nutrition counseling")
	assert.Contains(t, recommendations, "Diet rich in iron: green vegetables, meat, fortified cereals")
	assert.Contains(t, recommendations, "Regular blood pressure monitoring (weekly)")
	assert.Contains(t, recommendations, "Reduce salt intake, monitor for pre-eclampsia symptoms")
	assert.Contains(t, recommendations, "Review previous medical records and complications")
	assert.Contains(t, recommendations, "Enhanced monitoring throughout pregnancy")
}

func TestRecommendationGenerator_Generate_Deduplicates(t *testing.T) {
	generator := NewRecommendationGenerator(testLogger())

	// Both anemia grades share the same advice texts.
	factors := []domain.ContributingFactor{
		{Factor: domain.SEVERE_ANEMIA},
		{Factor: domain.MODERATE_ANEMIA},
	}
	recommendations := generator.Generate(domain.RISK_MEDIUM, factors)

	counts := make(map[string]int)
	for _, text := range recommendations {
		counts[text]++
	}
	for text, count := range counts {
		assert.Equalf(t, 1, count, "recommendation %q appears %d times", text, count)
	}
}

func TestRecommendationGenerator_Generate_GenericPerCategory(t *testing.T) {
	generator := NewRecommendationGenerator(testLogger())

	for _, category := range []domain.RiskLevel{domain.RISK_LOW, domain.RISK_MEDIUM, domain.RISK_HIGH} {
		recommendations := generator.Generate(category, nil)
		assert.NotEmptyf(t, recommendations, "category %s must always carry guidance", category)
	}
}
