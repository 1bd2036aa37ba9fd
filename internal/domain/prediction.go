package domain

import (
	"time"
)

// ContributingFactor describes one active clinical risk factor in a
// prediction, ordered by its contribution to the model output.
type ContributingFactor struct {
	Factor      FactorKind  `json:"factor"`
	Value       string      `json:"value"`
	Impact      ImpactLevel `json:"impact"`
	Description string      `json:"description"`
}

// Prediction is the complete result of scoring one patient observation.
type Prediction struct {
	RiskScore           int                  `json:"risk_score"`
	RiskCategory        RiskLevel            `json:"risk_category"`
	Probability         float64              `json:"probability"`
	ContributingFactors []ContributingFactor `json:"contributing_factors"`
	Recommendations     []string             `json:"recommendations"`
}

// ModelInfo exposes metadata about the currently loaded scoring model.
type ModelInfo struct {
	ModelType       string    `json:"model_type"`
	Features        []string  `json:"features"`
	Accuracy        float64   `json:"accuracy"`
	TrainingSamples int       `json:"training_samples"`
	Description     string    `json:"description"`
	TrainedAt       time.Time `json:"trained_at"`
}

// ExampleProfile is a fixed demonstration patient used by clients to
// exercise the predictor.
type ExampleProfile struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Data        PatientObservation `json:"data"`
}

// Language is a supported translation language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
