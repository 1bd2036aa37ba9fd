package service

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// Latent risk model behind the synthetic labels. Clinical points are
// centered at riskMidpoint and scaled by riskSpread; the slopes add mild
// continuous signal on top of the banded point rules.
const (
	riskMidpoint    = 45.0
	riskSpread      = 12.0
	systolicSlope   = 0.5
	diastolicSlope  = 0.5
	hemoglobinSlope = -0.5
	sugarSlope      = 0.3
)

const probabilityEpsilon = 1e-9

// Trainer fits a scoring model on a synthetic antenatal corpus. The whole
// pipeline is driven by the config seed: the same configuration always
// produces the same corpus, the same labels and bit-identical weights.
type Trainer struct {
	logger  *logrus.Logger
	encoder *FeatureEncoder
}

// NewTrainer creates a new trainer
func NewTrainer(logger *logrus.Logger, encoder *FeatureEncoder) *Trainer {
	return &Trainer{
		logger:  logger,
		encoder: encoder,
	}
}

// Train generates the synthetic corpus and fits a binary logistic
// regression with mini-batch gradient descent. Any failure (degenerate
// corpus, divergence, accuracy below the floor) is an error; callers must
// treat it as fatal and refuse to serve.
func (t *Trainer) Train(cfg domain.ModelConfig) (*Model, error) {
	startTime := time.Now()

	if cfg.Samples < domain.MinTrainingSamples {
		return nil, fmt.Errorf("training corpus of %d samples is below the minimum %d", cfg.Samples, domain.MinTrainingSamples)
	}
	if cfg.Epochs <= 0 || cfg.BatchSize <= 0 || cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("invalid training configuration: epochs=%d batch_size=%d learning_rate=%g",
			cfg.Epochs, cfg.BatchSize, cfg.LearningRate)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	observations := make([]domain.PatientObservation, cfg.Samples)
	for i := range observations {
		observations[i] = synthesizeObservation(rng)
	}

	features := make([][]float64, len(observations))
	labels := make([]float64, len(observations))
	positives := 0
	for i := range observations {
		x, err := t.encoder.Encode(&observations[i])
		if err != nil {
			return nil, fmt.Errorf("encoding synthetic sample %d: %w", i, err)
		}
		features[i] = x

		if rng.Float64() < adverseLikelihood(&observations[i], x) {
			labels[i] = 1.0
			positives++
		}
	}

	if positives == 0 || positives == len(labels) {
		return nil, fmt.Errorf("degenerate training corpus: %d positive labels out of %d", positives, len(labels))
	}

	valCount := int(float64(len(observations)) * cfg.ValidationSplit)
	trainCount := len(observations) - valCount
	if trainCount <= 0 || valCount <= 0 {
		return nil, fmt.Errorf("validation split %.2f leaves no data to fit or evaluate", cfg.ValidationSplit)
	}

	trainX, trainY := features[:trainCount], labels[:trainCount]
	valX, valY := features[trainCount:], labels[trainCount:]

	weights := make([]float64, featureCount)
	bias := 0.0
	initialLoss := crossEntropyLoss(weights, bias, trainX, trainY)

	weights, bias = fitLogistic(trainX, trainY, cfg)

	finalLoss := crossEntropyLoss(weights, bias, trainX, trainY)
	if math.IsNaN(finalLoss) || math.IsInf(finalLoss, 0) || finalLoss >= initialLoss {
		return nil, fmt.Errorf("model fit did not converge: loss %.4f -> %.4f", initialLoss, finalLoss)
	}

	accuracy := evaluateAccuracy(weights, bias, valX, valY)
	if accuracy < cfg.MinAccuracy {
		return nil, fmt.Errorf("validation accuracy %.3f below required %.3f", accuracy, cfg.MinAccuracy)
	}

	model := &Model{
		weights:         weights,
		bias:            bias,
		featureNames:    t.encoder.FeatureNames(),
		accuracy:        accuracy,
		trainingSamples: cfg.Samples,
		seed:            cfg.Seed,
		trainedAt:       time.Now().UTC(),
	}

	t.logger.WithFields(logrus.Fields{
		"samples":       cfg.Samples,
		"positive_rate": float64(positives) / float64(len(labels)),
		"epochs":        cfg.Epochs,
		"learning_rate": cfg.LearningRate,
		"initial_loss":  initialLoss,
		"final_loss":    finalLoss,
		"accuracy":      accuracy,
		"duration":      time.Since(startTime),
	}).Info("Scoring model fitted")

	return model, nil
}

// synthesizeObservation draws one patient. Prevalences are banded so every
// clinical band the label rules reference is populated, including the
// intermediate elevated-BP, moderate-anemia and pre-diabetic bands.
func synthesizeObservation(rng *rand.Rand) domain.PatientObservation {
	var obs domain.PatientObservation

	switch r := rng.Float64(); {
	case r < 0.15: // teenage band
		obs.Age = 15 + rng.Intn(4)
	case r < 0.85: // optimal band
		obs.Age = 19 + rng.Intn(16)
	default: // advanced maternal age
		obs.Age = 35 + rng.Intn(11)
	}

	obs.NumPregnancies = 1 + rng.Intn(7)
	obs.Trimester = 1 + rng.Intn(3)

	switch r := rng.Float64(); {
	case r < 0.12: // severe anemia
		obs.Hemoglobin = uniform(rng, 7.0, 10.0)
	case r < 0.25: // moderate anemia
		obs.Hemoglobin = uniform(rng, 10.0, 11.0)
	default:
		obs.Hemoglobin = uniform(rng, 11.0, 15.5)
	}

	switch r := rng.Float64(); {
	case r < 0.20: // hypertensive
		obs.SystolicBP = 140 + rng.Intn(40)
		obs.DiastolicBP = 90 + rng.Intn(20)
	case r < 0.35: // elevated
		obs.SystolicBP = 128 + rng.Intn(12)
		obs.DiastolicBP = 82 + rng.Intn(8)
	default:
		obs.SystolicBP = 95 + rng.Intn(33)
		obs.DiastolicBP = 60 + rng.Intn(25)
	}

	switch r := rng.Float64(); {
	case r < 0.15: // gestational diabetes range
		obs.BloodSugar = uniform(rng, 140.0, 200.0)
	case r < 0.30: // pre-diabetic band
		obs.BloodSugar = uniform(rng, 120.0, 140.0)
	default:
		obs.BloodSugar = uniform(rng, 70.0, 120.0)
	}

	switch r := rng.Float64(); {
	case r < 0.15: // underweight
		obs.BMI = uniform(rng, 15.0, 18.4)
	case r < 0.65: // normal
		obs.BMI = uniform(rng, 18.5, 24.9)
	case r < 0.90: // overweight
		obs.BMI = uniform(rng, 25.0, 29.9)
	default: // obese
		obs.BMI = uniform(rng, 30.0, 40.0)
	}

	obs.PreviousComplications = rng.Float64() < 0.10

	return obs
}

// clinicalRiskPoints scores an observation with the graded point rules the
// labels derive from. Severe bands stack on their milder bands: severe
// anemia scores 15+15, hypertension 20+15, gestational diabetes 10+15.
func clinicalRiskPoints(obs *domain.PatientObservation) int {
	points := 0

	if obs.IsTeenage() {
		points += 25
	}
	if obs.IsAdvancedMaternalAge() {
		points += 25
	}
	if obs.IsMildAnemia() {
		points += 15
	}
	if obs.IsAnemic() {
		points += 15
	}
	if obs.IsElevatedBP() {
		points += 20
	}
	if obs.IsHypertensive() {
		points += 15
	}
	if obs.IsElevatedSugar() {
		points += 10
	}
	if obs.IsHyperglycemic() {
		points += 15
	}
	if obs.IsUnderweight() {
		points += 15
	}
	if obs.IsObese() {
		points += 15
	}
	if obs.PreviousComplications {
		points += 20
	}
	if obs.IsGrandMultipara() {
		points += 15
	}

	return points
}

// adverseLikelihood is the generator's ground-truth probability of an
// adverse outcome. Labels are Bernoulli draws from it, which keeps the
// corpus non-separable.
func adverseLikelihood(obs *domain.PatientObservation, features []float64) float64 {
	z := (float64(clinicalRiskPoints(obs)) - riskMidpoint) / riskSpread
	z += systolicSlope * features[featSystolicBP]
	z += diastolicSlope * features[featDiastolicBP]
	z += hemoglobinSlope * features[featHemoglobin]
	z += sugarSlope * features[featBloodSugar]
	return sigmoid(z)
}

// fitLogistic runs mini-batch gradient descent on binary cross-entropy.
// Batches are taken in corpus order without shuffling so the fit is a pure
// function of the corpus.
func fitLogistic(features [][]float64, labels []float64, cfg domain.ModelConfig) ([]float64, float64) {
	weights := make([]float64, featureCount)
	bias := 0.0

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for start := 0; start < len(features); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(features) {
				end = len(features)
			}

			gradW := make([]float64, featureCount)
			gradB := 0.0
			for i := start; i < end; i++ {
				p := sigmoid(dot(weights, features[i]) + bias)
				diff := p - labels[i]
				for j, v := range features[i] {
					gradW[j] += diff * v
				}
				gradB += diff
			}

			step := cfg.LearningRate / float64(end-start)
			for j := range weights {
				weights[j] -= step * gradW[j]
			}
			bias -= step * gradB
		}
	}

	return weights, bias
}

func crossEntropyLoss(weights []float64, bias float64, features [][]float64, labels []float64) float64 {
	if len(features) == 0 {
		return 0
	}

	total := 0.0
	for i := range features {
		p := clampProbability(sigmoid(dot(weights, features[i]) + bias))
		if labels[i] >= 0.5 {
			total += -math.Log(p)
		} else {
			total += -math.Log(1.0 - p)
		}
	}
	return total / float64(len(features))
}

func evaluateAccuracy(weights []float64, bias float64, features [][]float64, labels []float64) float64 {
	if len(features) == 0 {
		return 0
	}

	correct := 0
	for i := range features {
		p := sigmoid(dot(weights, features[i]) + bias)
		predicted := 0.0
		if p >= 0.5 {
			predicted = 1.0
		}
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(features))
}

func clampProbability(p float64) float64 {
	if p < probabilityEpsilon {
		return probabilityEpsilon
	}
	if p > 1.0-probabilityEpsilon {
		return 1.0 - probabilityEpsilon
	}
	return p
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
