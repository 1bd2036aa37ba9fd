package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

func TestFactorAttributor_Attribute(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())
	encoder := NewFeatureEncoder()

	obs := teenageAnemicObservation()
	features, err := encoder.Encode(obs)
	require.NoError(t, err)

	// Weight only the indicator channels so the group contributions are
	// exactly 3.0, 2.0 and 0.5.
	weights := make([]float64, featureCount)
	weights[featIsAnemic] = 3.0
	weights[featIsHypertensive] = 2.0
	weights[featIsTeenage] = 0.5

	factors, err := attributor.Attribute(obs, features, weights)
	require.NoError(t, err)
	require.Len(t, factors, 3)

	assert.Equal(t, domain.SEVERE_ANEMIA, factors[0].Factor)
	assert.Equal(t, domain.IMPACT_HIGH, factors[0].Impact)
	assert.Equal(t, "8.5 g/dL", factors[0].Value)
	assert.Equal(t, "Hemoglobin below 10 g/dL indicates severe anemia", factors[0].Description)

	assert.Equal(t, domain.HYPERTENSION, factors[1].Factor)
	assert.Equal(t, domain.IMPACT_HIGH, factors[1].Impact)
	assert.Equal(t, "150/95 mmHg", factors[1].Value)

	assert.Equal(t, domain.TEENAGE_PREGNANCY, factors[2].Factor)
	assert.Equal(t, domain.IMPACT_LOW, factors[2].Impact)
	assert.Equal(t, "17 years", factors[2].Value)
}

func TestFactorAttributor_Attribute_TieBreak(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())
	encoder := NewFeatureEncoder()

	obs := teenageAnemicObservation()
	features, err := encoder.Encode(obs)
	require.NoError(t, err)

	// Equal contributions resolve by clinical priority: anemia before
	// blood pressure before age.
	weights := make([]float64, featureCount)
	weights[featIsAnemic] = 1.0
	weights[featIsHypertensive] = 1.0
	weights[featIsTeenage] = 1.0

	factors, err := attributor.Attribute(obs, features, weights)
	require.NoError(t, err)
	require.Len(t, factors, 3)

	assert.Equal(t, domain.SEVERE_ANEMIA, factors[0].Factor)
	assert.Equal(t, domain.HYPERTENSION, factors[1].Factor)
	assert.Equal(t, domain.TEENAGE_PREGNANCY, factors[2].Factor)
	for _, factor := range factors {
		assert.Equal(t, domain.IMPACT_HIGH, factor.Impact)
	}
}

func TestFactorAttributor_Attribute_ExclusiveBands(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())
	encoder := NewFeatureEncoder()

	// Moderate values must report the moderate factor, never its severe
	// sibling.
	obs := &domain.PatientObservation{
		Age:            36,
		NumPregnancies: 2,
		Trimester:      2,
		Hemoglobin:     10.5,
		SystolicBP:     135,
		DiastolicBP:    87,
		BloodSugar:     130.0,
		BMI:            24.0,
	}
	features, err := encoder.Encode(obs)
	require.NoError(t, err)

	factors, err := attributor.Attribute(obs, features, trainedTestModel(t).Weights())
	require.NoError(t, err)

	kinds := make([]domain.FactorKind, 0, len(factors))
	for _, factor := range factors {
		kinds = append(kinds, factor.Factor)
	}

	assert.Contains(t, kinds, domain.MODERATE_ANEMIA)
	assert.Contains(t, kinds, domain.ELEVATED_BP)
	assert.Contains(t, kinds, domain.ELEVATED_BLOOD_SUGAR)
	assert.Contains(t, kinds, domain.ADVANCED_MATERNAL_AGE)
	assert.NotContains(t, kinds, domain.SEVERE_ANEMIA)
	assert.NotContains(t, kinds, domain.HYPERTENSION)
	assert.NotContains(t, kinds, domain.GESTATIONAL_DIABETES)
}

func TestFactorAttributor_Attribute_HealthyObservation(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())
	encoder := NewFeatureEncoder()

	obs := healthyAdultObservation()
	features, err := encoder.Encode(obs)
	require.NoError(t, err)

	factors, err := attributor.Attribute(obs, features, trainedTestModel(t).Weights())
	require.NoError(t, err)
	assert.NotNil(t, factors)
	assert.Empty(t, factors)
}

func TestFactorAttributor_Attribute_ZeroWeights(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())
	encoder := NewFeatureEncoder()

	obs := teenageAnemicObservation()
	features, err := encoder.Encode(obs)
	require.NoError(t, err)

	// No signal at all still reports the active factors, graded Low.
	factors, err := attributor.Attribute(obs, features, make([]float64, featureCount))
	require.NoError(t, err)
	require.NotEmpty(t, factors)
	for _, factor := range factors {
		assert.Equal(t, domain.IMPACT_LOW, factor.Impact)
	}
}

func TestFactorAttributor_Attribute_VectorMismatch(t *testing.T) {
	attributor := NewFactorAttributor(testLogger())

	obs := teenageAnemicObservation()
	_, err := attributor.Attribute(obs, make([]float64, 3), make([]float64, featureCount))

	var attributionErr *domain.AttributionError
	require.ErrorAs(t, err, &attributionErr)
	assert.Equal(t, 3, attributionErr.Features)
	assert.Equal(t, featureCount, attributionErr.Weights)
}
