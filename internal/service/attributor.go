package service

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// MaxDisplayFactors caps how many contributing factors a prediction shows.
const MaxDisplayFactors = 5

// FactorAttributor explains a scored observation by the weight mass behind
// each active clinical factor.
type FactorAttributor struct {
	logger *logrus.Logger
}

// NewFactorAttributor creates a new factor attributor
func NewFactorAttributor(logger *logrus.Logger) *FactorAttributor {
	return &FactorAttributor{
		logger: logger,
	}
}

// factorRule binds a clinical factor to the feature channels that carry its
// signal. Lower priority wins ties between equal contributions.
type factorRule struct {
	kind     domain.FactorKind
	priority int
	active   func(*domain.PatientObservation) bool
	channels []int
	value    func(*domain.PatientObservation) string
}

// factorRules lists every reportable factor. The severe form of a condition
// shadows its milder form, so at most one rule per measurement fires.
var factorRules = []factorRule{
	{
		kind:     domain.SEVERE_ANEMIA,
		priority: 0,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsAnemic() },
		channels: []int{featHemoglobin, featIsMildAnemia, featIsAnemic},
		value:    func(obs *domain.PatientObservation) string { return formatMeasure(obs.Hemoglobin) + " g/dL" },
	},
	{
		kind:     domain.MODERATE_ANEMIA,
		priority: 0,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsMildAnemia() && !obs.IsAnemic() },
		channels: []int{featHemoglobin, featIsMildAnemia},
		value:    func(obs *domain.PatientObservation) string { return formatMeasure(obs.Hemoglobin) + " g/dL" },
	},
	{
		kind:     domain.HYPERTENSION,
		priority: 1,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsHypertensive() },
		channels: []int{featSystolicBP, featDiastolicBP, featIsElevatedBP, featIsHypertensive},
		value: func(obs *domain.PatientObservation) string {
			return fmt.Sprintf("%d/%d mmHg", obs.SystolicBP, obs.DiastolicBP)
		},
	},
	{
		kind:     domain.ELEVATED_BP,
		priority: 1,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsElevatedBP() && !obs.IsHypertensive() },
		channels: []int{featSystolicBP, featDiastolicBP, featIsElevatedBP},
		value: func(obs *domain.PatientObservation) string {
			return fmt.Sprintf("%d/%d mmHg", obs.SystolicBP, obs.DiastolicBP)
		},
	},
	{
		kind:     domain.GESTATIONAL_DIABETES,
		priority: 2,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsHyperglycemic() },
		channels: []int{featBloodSugar, featIsElevatedSugar, featIsHyperglycemic},
		value:    func(obs *domain.PatientObservation) string { return formatMeasure(obs.BloodSugar) + " mg/dL" },
	},
	{
		kind:     domain.ELEVATED_BLOOD_SUGAR,
		priority: 2,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsElevatedSugar() && !obs.IsHyperglycemic() },
		channels: []int{featBloodSugar, featIsElevatedSugar},
		value:    func(obs *domain.PatientObservation) string { return formatMeasure(obs.BloodSugar) + " mg/dL" },
	},
	{
		kind:     domain.UNDERWEIGHT,
		priority: 3,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsUnderweight() },
		channels: []int{featBMI, featIsUnderweight},
		value:    func(obs *domain.PatientObservation) string { return "BMI " + formatMeasure(obs.BMI) },
	},
	{
		kind:     domain.OBESITY,
		priority: 3,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsObese() },
		channels: []int{featBMI, featIsObese},
		value:    func(obs *domain.PatientObservation) string { return "BMI " + formatMeasure(obs.BMI) },
	},
	{
		kind:     domain.TEENAGE_PREGNANCY,
		priority: 4,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsTeenage() },
		channels: []int{featAge, featIsTeenage},
		value:    func(obs *domain.PatientObservation) string { return fmt.Sprintf("%d years", obs.Age) },
	},
	{
		kind:     domain.ADVANCED_MATERNAL_AGE,
		priority: 4,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsAdvancedMaternalAge() },
		channels: []int{featAge, featIsAdvancedMaternalAge},
		value:    func(obs *domain.PatientObservation) string { return fmt.Sprintf("%d years", obs.Age) },
	},
	{
		kind:     domain.GRAND_MULTIPARITY,
		priority: 5,
		active:   func(obs *domain.PatientObservation) bool { return obs.IsGrandMultipara() },
		channels: []int{featNumPregnancies, featIsGrandMultipara},
		value:    func(obs *domain.PatientObservation) string { return fmt.Sprintf("%d pregnancies", obs.NumPregnancies) },
	},
	{
		kind:     domain.PREVIOUS_COMPLICATIONS,
		priority: 6,
		active:   func(obs *domain.PatientObservation) bool { return obs.PreviousComplications },
		channels: []int{featPreviousComplications},
		value:    func(obs *domain.PatientObservation) string { return "Yes" },
	},
}

// Attribute ranks the clinical factors active for an observation by their
// share of the model's signal. A factor's contribution is the absolute sum
// of weight*feature over its channel group, so signal split between a raw
// measurement and its indicator features is credited once. The returned
// slice is sorted by contribution, then rule priority, then factor name,
// and is empty when no factor is active.
func (a *FactorAttributor) Attribute(obs *domain.PatientObservation, features, weights []float64) ([]domain.ContributingFactor, error) {
	if len(features) != featureCount || len(weights) != featureCount {
		return nil, domain.NewAttributionError("vector length does not match the feature layout", len(features), len(weights))
	}

	type scoredFactor struct {
		rule         factorRule
		contribution float64
	}

	scored := make([]scoredFactor, 0, len(factorRules))
	maxContribution := 0.0
	for _, rule := range factorRules {
		if !rule.active(obs) {
			continue
		}

		contribution := 0.0
		for _, channel := range rule.channels {
			contribution += weights[channel] * features[channel]
		}
		if contribution < 0 {
			contribution = -contribution
		}

		scored = append(scored, scoredFactor{rule: rule, contribution: contribution})
		if contribution > maxContribution {
			maxContribution = contribution
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].contribution != scored[j].contribution {
			return scored[i].contribution > scored[j].contribution
		}
		if scored[i].rule.priority != scored[j].rule.priority {
			return scored[i].rule.priority < scored[j].rule.priority
		}
		return scored[i].rule.kind < scored[j].rule.kind
	})

	factors := make([]domain.ContributingFactor, 0, len(scored))
	for _, s := range scored {
		factors = append(factors, domain.ContributingFactor{
			Factor:      s.rule.kind,
			Value:       s.rule.value(obs),
			Impact:      impactTier(s.contribution, maxContribution),
			Description: s.rule.kind.Description(),
		})
	}

	a.logger.WithFields(logrus.Fields{
		"active_factors":   len(factors),
		"max_contribution": maxContribution,
	}).Debug("Factor attribution completed")

	return factors, nil
}

// impactTier grades a contribution relative to the strongest factor: the
// top third of the range is High impact, the middle third Medium.
func impactTier(contribution, maxContribution float64) domain.ImpactLevel {
	if maxContribution <= 0 {
		return domain.IMPACT_LOW
	}

	ratio := contribution / maxContribution
	switch {
	case ratio >= 2.0/3.0:
		return domain.IMPACT_HIGH
	case ratio >= 1.0/3.0:
		return domain.IMPACT_MEDIUM
	default:
		return domain.IMPACT_LOW
	}
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
