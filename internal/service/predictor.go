package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// PredictorService runs the full risk assessment workflow: feature
// encoding, model scoring, calibration, factor attribution and
// recommendation generation.
type PredictorService struct {
	logger      *logrus.Logger
	encoder     *FeatureEncoder
	attributor  *FactorAttributor
	recommender *RecommendationGenerator
	model       atomic.Pointer[Model]
}

// NewPredictorService creates a new predictor service. A nil model is
// accepted; predictions fail with ErrModelUnavailable until ReplaceModel
// installs one.
func NewPredictorService(
	logger *logrus.Logger,
	encoder *FeatureEncoder,
	attributor *FactorAttributor,
	recommender *RecommendationGenerator,
	model *Model,
) *PredictorService {
	s := &PredictorService{
		logger:      logger,
		encoder:     encoder,
		attributor:  attributor,
		recommender: recommender,
	}
	if model != nil {
		s.model.Store(model)
	}
	return s
}

// ReplaceModel swaps the serving model. In-flight predictions keep the
// model they started with.
func (s *PredictorService) ReplaceModel(model *Model) {
	s.model.Store(model)
}

// Predict assesses one patient observation and returns the calibrated
// risk score, category, ranked contributing factors and recommendations.
func (s *PredictorService) Predict(ctx context.Context, obs *domain.PatientObservation) (*domain.Prediction, error) {
	startTime := time.Now()

	// Step 1: Encode the observation into the model's feature layout
	features, err := s.encoder.Encode(obs)
	if err != nil {
		return nil, err
	}

	model, err := s.currentModel()
	if err != nil {
		return nil, err
	}

	// Step 2: Score the feature vector
	probability, err := model.Probability(features)
	if err != nil {
		return nil, err
	}

	// Step 3: Calibrate onto the display scale
	category := Categorize(probability)
	score := RiskScore(probability)

	// Step 4: Attribute contributing factors. Attribution failure degrades
	// to an unexplained prediction instead of failing the request.
	factors, err := s.attributor.Attribute(obs, features, model.Weights())
	if err != nil {
		s.logger.WithError(err).Error("Factor attribution failed, returning prediction without factors")
		factors = []domain.ContributingFactor{}
	}

	// Step 5: Generate recommendations from the full factor list, then cap
	// the factors shown
	recommendations := s.recommender.Generate(category, factors)
	if len(factors) > MaxDisplayFactors {
		factors = factors[:MaxDisplayFactors]
	}

	prediction := &domain.Prediction{
		RiskScore:           score,
		RiskCategory:        category,
		Probability:         probability,
		ContributingFactors: factors,
		Recommendations:     recommendations,
	}

	s.logger.WithFields(logrus.Fields{
		"risk_score":    score,
		"risk_category": category.String(),
		"probability":   probability,
		"factors":       len(factors),
		"duration":      time.Since(startTime),
	}).Info("Risk assessment completed")

	return prediction, nil
}

// ModelInfo describes the currently served model.
func (s *PredictorService) ModelInfo() (domain.ModelInfo, error) {
	model, err := s.currentModel()
	if err != nil {
		return domain.ModelInfo{}, err
	}
	return model.Info(), nil
}

func (s *PredictorService) currentModel() (*Model, error) {
	model := s.model.Load()
	if model == nil {
		return nil, domain.ErrModelUnavailable
	}
	return model, nil
}
