package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Probability(t *testing.T) {
	model := &Model{
		weights:      make([]float64, featureCount),
		featureNames: featureNames,
	}

	p, err := model.Probability(make([]float64, featureCount))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	model.weights[featIsAnemic] = 2.0
	model.bias = -1.0
	features := make([]float64, featureCount)
	features[featIsAnemic] = 1.0

	p, err = model.Probability(features)
	require.NoError(t, err)
	assert.InDelta(t, 0.7310585786, p, 1e-9)
}

func TestModel_Probability_LengthMismatch(t *testing.T) {
	model := trainedTestModel(t)

	_, err := model.Probability(make([]float64, 3))
	assert.Error(t, err)
}

func TestModel_Info(t *testing.T) {
	model := trainedTestModel(t)
	info := model.Info()

	assert.Equal(t, "Logistic Regression (Binary)", info.ModelType)
	assert.Equal(t, featureNames, info.Features)
	assert.Equal(t, 1000, info.TrainingSamples)
	assert.GreaterOrEqual(t, info.Accuracy, 0.70)
	assert.LessOrEqual(t, info.Accuracy, 1.0)
	assert.NotEmpty(t, info.Description)
	assert.False(t, info.TrainedAt.IsZero())
}

func TestModel_AccessorsCopy(t *testing.T) {
	model := trainedTestModel(t)

	weights := model.Weights()
	original := weights[0]
	weights[0] = original + 999

	assert.Equal(t, original, model.Weights()[0])

	names := model.FeatureNames()
	names[0] = "mutated"
	assert.Equal(t, "age", model.FeatureNames()[0])
}
