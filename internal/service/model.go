package service

import (
	"fmt"
	"math"
	"time"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

const (
	modelType        = "Logistic Regression (Binary)"
	modelDescription = "AI model trained on synthetic maternal health data based on WHO guidelines"
)

// Model is a fitted binary logistic regression over the encoder's feature
// vector. A model is immutable once constructed; scoring is read-only and
// safe for concurrent use.
type Model struct {
	weights         []float64
	bias            float64
	featureNames    []string
	accuracy        float64
	trainingSamples int
	seed            int64
	trainedAt       time.Time
}

// Probability returns the predicted adverse-outcome probability for an
// encoded observation.
func (m *Model) Probability(features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("feature vector length %d does not match model dimension %d",
			len(features), len(m.weights))
	}

	return sigmoid(dot(m.weights, features) + m.bias), nil
}

// Weights returns a copy of the fitted weights.
func (m *Model) Weights() []float64 {
	weights := make([]float64, len(m.weights))
	copy(weights, m.weights)
	return weights
}

// Bias returns the fitted intercept.
func (m *Model) Bias() float64 {
	return m.bias
}

// FeatureNames returns a copy of the feature ordering the model was
// fitted against.
func (m *Model) FeatureNames() []string {
	names := make([]string, len(m.featureNames))
	copy(names, m.featureNames)
	return names
}

// Accuracy returns the held-out validation accuracy measured after fitting.
func (m *Model) Accuracy() float64 {
	return m.accuracy
}

// TrainingSamples returns the synthetic corpus size the model was fitted on.
func (m *Model) TrainingSamples() int {
	return m.trainingSamples
}

// Seed returns the RNG seed that produced the corpus and fit.
func (m *Model) Seed() int64 {
	return m.seed
}

// TrainedAt returns the fit timestamp.
func (m *Model) TrainedAt() time.Time {
	return m.trainedAt
}

// Info returns the model metadata for introspection endpoints.
func (m *Model) Info() domain.ModelInfo {
	return domain.ModelInfo{
		ModelType:       modelType,
		Features:        m.FeatureNames(),
		Accuracy:        round3(m.accuracy),
		TrainingSamples: m.trainingSamples,
		Description:     modelDescription,
		TrainedAt:       m.trainedAt,
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(w, x []float64) float64 {
	sum := 0.0
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
