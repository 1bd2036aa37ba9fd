package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// stubPredictor satisfies domain.RiskPredictor with canned results and
// records the observation it was handed.
type stubPredictor struct {
	lastObs    *domain.PatientObservation
	prediction *domain.Prediction
	info       domain.ModelInfo
	err        error
}

func (s *stubPredictor) Predict(_ context.Context, obs *domain.PatientObservation) (*domain.Prediction, error) {
	s.lastObs = obs
	if s.err != nil {
		return nil, s.err
	}
	return s.prediction, nil
}

func (s *stubPredictor) ModelInfo() (domain.ModelInfo, error) {
	if s.err != nil {
		return domain.ModelInfo{}, s.err
	}
	return s.info, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestNewServer(t *testing.T) {
	logger := quietLogger()
	server := NewServer(&stubPredictor{}, WithLogger(logger))

	require.NotNil(t, server)
	assert.NotNil(t, server.mcpServer)
	assert.Same(t, logger, server.logger)
}

func TestServer_HandlePredictRisk(t *testing.T) {
	predictor := &stubPredictor{
		prediction: &domain.Prediction{
			RiskScore:    85,
			RiskCategory: domain.RISK_HIGH,
			Probability:  0.85,
			ContributingFactors: []domain.ContributingFactor{
				{
					Factor:      domain.SEVERE_ANEMIA,
					Value:       "8.5 g/dL",
					Impact:      domain.IMPACT_HIGH,
					Description: domain.SEVERE_ANEMIA.Description(),
				},
			},
			Recommendations: []string{"Immediate medical consultation required"},
		},
	}
	server := NewServer(predictor, WithLogger(quietLogger()))

	result, _, err := server.handlePredictRisk(context.Background(), nil, PredictRiskParams{
		Age:            17,
		NumPregnancies: 1,
		Trimester:      2,
		Hemoglobin:     8.5,
		SystolicBP:     150,
		DiastolicBP:    95,
		BloodSugar:     98.0,
		BMI:            19.2,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	// Params must reach the predictor as a full observation.
	require.NotNil(t, predictor.lastObs)
	assert.Equal(t, 17, predictor.lastObs.Age)
	assert.Equal(t, 8.5, predictor.lastObs.Hemoglobin)

	var decoded domain.Prediction
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Equal(t, 85, decoded.RiskScore)
	assert.Equal(t, domain.RISK_HIGH, decoded.RiskCategory)
	require.Len(t, decoded.ContributingFactors, 1)
	assert.Equal(t, domain.SEVERE_ANEMIA, decoded.ContributingFactors[0].Factor)
}

func TestServer_HandlePredictRisk_InvalidInput(t *testing.T) {
	predictor := &stubPredictor{
		err: domain.NewValidationError("age", "must be between 15 and 50 years", 10),
	}
	server := NewServer(predictor, WithLogger(quietLogger()))

	result, _, err := server.handlePredictRisk(context.Background(), nil, PredictRiskParams{Age: 10})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "age")
}

func TestServer_HandleGetModelInfo(t *testing.T) {
	predictor := &stubPredictor{
		info: domain.ModelInfo{
			ModelType:       "Logistic Regression (Binary)",
			Features:        []string{"age", "hemoglobin"},
			Accuracy:        0.87,
			TrainingSamples: 1000,
		},
	}
	server := NewServer(predictor, WithLogger(quietLogger()))

	result, _, err := server.handleGetModelInfo(context.Background(), nil, GetModelInfoParams{})

	require.NoError(t, err)
	assert.False(t, result.IsError)

	var decoded domain.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Equal(t, "Logistic Regression (Binary)", decoded.ModelType)
	assert.Equal(t, 1000, decoded.TrainingSamples)
}

func TestServer_HandleGetModelInfo_Unavailable(t *testing.T) {
	predictor := &stubPredictor{err: domain.ErrModelUnavailable}
	server := NewServer(predictor, WithLogger(quietLogger()))

	result, _, err := server.handleGetModelInfo(context.Background(), nil, GetModelInfoParams{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unavailable")
}

func TestServer_HandleListExampleProfiles(t *testing.T) {
	server := NewServer(&stubPredictor{}, WithLogger(quietLogger()))

	result, _, err := server.handleListExampleProfiles(context.Background(), nil, ListExampleProfilesParams{})

	require.NoError(t, err)
	assert.False(t, result.IsError)

	var decoded struct {
		Examples []domain.ExampleProfile `json:"examples"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	require.Len(t, decoded.Examples, 3)
	assert.Equal(t, 17, decoded.Examples[0].Data.Age)
}
