package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// PredictRiskParams defines parameters for the predict_risk tool.
type PredictRiskParams struct {
	Age                   int     `json:"age"`
	NumPregnancies        int     `json:"num_pregnancies"`
	Trimester             int     `json:"trimester"`
	Hemoglobin            float64 `json:"hemoglobin"`
	SystolicBP            int     `json:"systolic_bp"`
	DiastolicBP           int     `json:"diastolic_bp"`
	BloodSugar            float64 `json:"blood_sugar"`
	BMI                   float64 `json:"bmi"`
	PreviousComplications bool    `json:"previous_complications,omitempty"`
}

// GetModelInfoParams defines parameters for the get_model_info tool.
type GetModelInfoParams struct{}

// ListExampleProfilesParams defines parameters for the
// list_example_profiles tool.
type ListExampleProfilesParams struct{}

// handlePredictRisk handles the predict_risk tool invocation.
func (s *Server) handlePredictRisk(ctx context.Context, req *mcp.CallToolRequest, params PredictRiskParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "predict_risk").Info("Tool invoked")

	obs := &domain.PatientObservation{
		Age:                   params.Age,
		NumPregnancies:        params.NumPregnancies,
		Trimester:             params.Trimester,
		Hemoglobin:            params.Hemoglobin,
		SystolicBP:            params.SystolicBP,
		DiastolicBP:           params.DiastolicBP,
		BloodSugar:            params.BloodSugar,
		BMI:                   params.BMI,
		PreviousComplications: params.PreviousComplications,
	}

	prediction, err := s.predictor.Predict(ctx, obs)
	if err != nil {
		return s.errorResult("Prediction failed", err), nil, nil
	}

	return s.jsonResult(prediction), nil, nil
}

// handleGetModelInfo handles the get_model_info tool invocation.
func (s *Server) handleGetModelInfo(ctx context.Context, req *mcp.CallToolRequest, params GetModelInfoParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "get_model_info").Info("Tool invoked")

	info, err := s.predictor.ModelInfo()
	if err != nil {
		return s.errorResult("Model info unavailable", err), nil, nil
	}

	return s.jsonResult(info), nil, nil
}

// handleListExampleProfiles handles the list_example_profiles tool
// invocation.
func (s *Server) handleListExampleProfiles(ctx context.Context, req *mcp.CallToolRequest, params ListExampleProfilesParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "list_example_profiles").Info("Tool invoked")

	return s.jsonResult(map[string]interface{}{
		"examples": domain.ExampleProfiles(),
	}), nil, nil
}

// jsonResult renders a value as an indented JSON text block.
func (s *Server) jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.errorResult("Failed to encode result", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

// errorResult reports a tool failure to the client without failing the
// protocol call.
func (s *Server) errorResult(message string, err error) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s", message)
	if err != nil {
		errorText += fmt.Sprintf(" - %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: errorText},
		},
		IsError: true,
	}
}
