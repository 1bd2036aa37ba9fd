package service

import (
	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// RecommendationRule matches on risk category, contributing factor, or
// both. A zero Category means any category; a zero Factor means the rule
// needs no factor to fire.
type RecommendationRule struct {
	Category domain.RiskLevel
	Factor   domain.FactorKind
	Text     string
}

// recommendationRules drives guidance generation. Order is significant:
// category-level guidance first, then factor-specific advice, then the
// general reminders every prediction carries.
var recommendationRules = []RecommendationRule{
	{Category: domain.RISK_HIGH, Text: "Immediate medical consultation required"},
	{Category: domain.RISK_HIGH, Text: "Comprehensive prenatal testing recommended"},
	{Category: domain.RISK_HIGH, Text: "Consider referral to specialist facility"},
	{Category: domain.RISK_MEDIUM, Text: "Schedule additional antenatal visits for closer monitoring"},
	{Category: domain.RISK_LOW, Text: "Continue routine antenatal care"},

	{Factor: domain.SEVERE_ANEMIA, Text: "Iron supplementation and nutrition counseling"},
	{Factor: domain.SEVERE_ANEMIA, Text: "Diet rich in iron: green vegetables, meat, fortified cereals"},
	{Factor: domain.MODERATE_ANEMIA, Text: "Iron supplementation and nutrition counseling"},
	{Factor: domain.MODERATE_ANEMIA, Text: "Diet rich in iron: green vegetables, meat, fortified cereals"},
	{Factor: domain.HYPERTENSION, Text: "Regular blood pressure monitoring (weekly)"},
	{Factor: domain.HYPERTENSION, Text: "Reduce salt intake, monitor for pre-eclampsia symptoms"},
	{Factor: domain.ELEVATED_BP, Text: "Regular blood pressure monitoring (weekly)"},
	{Factor: domain.ELEVATED_BP, Text: "Reduce salt intake, monitor for pre-eclampsia symptoms"},
	{Factor: domain.GESTATIONAL_DIABETES, Text: "Diabetes screening and blood sugar monitoring"},
	{Factor: domain.GESTATIONAL_DIABETES, Text: "Dietary modifications and light exercise"},
	{Factor: domain.ELEVATED_BLOOD_SUGAR, Text: "Diabetes screening and blood sugar monitoring"},
	{Factor: domain.ELEVATED_BLOOD_SUGAR, Text: "Dietary modifications and light exercise"},
	{Factor: domain.UNDERWEIGHT, Text: "Nutritional support to achieve healthy weight gain"},
	{Factor: domain.OBESITY, Text: "Weight management and nutritionist consultation"},
	{Factor: domain.TEENAGE_PREGNANCY, Text: "Additional psychosocial support and education"},
	{Factor: domain.ADVANCED_MATERNAL_AGE, Text: "Advanced screening tests (genetic counseling if needed)"},
	{Factor: domain.PREVIOUS_COMPLICATIONS, Text: "Review previous medical records and complications"},
	{Factor: domain.PREVIOUS_COMPLICATIONS, Text: "Enhanced monitoring throughout pregnancy"},

	{Text: "Regular antenatal check-ups as scheduled"},
	{Text: "Emergency contact: Seek help if severe headache, vision changes, or bleeding"},
}

// RecommendationGenerator produces care guidance for a categorized
// prediction.
type RecommendationGenerator struct {
	logger *logrus.Logger
}

// NewRecommendationGenerator creates a new recommendation generator
func NewRecommendationGenerator(logger *logrus.Logger) *RecommendationGenerator {
	return &RecommendationGenerator{
		logger: logger,
	}
}

// Generate walks the rule table against the risk category and the full
// factor list. Duplicate texts are dropped while the first occurrence keeps
// its position, so advice shared by two factors appears once.
func (g *RecommendationGenerator) Generate(category domain.RiskLevel, factors []domain.ContributingFactor) []string {
	present := make(map[domain.FactorKind]bool, len(factors))
	for _, factor := range factors {
		present[factor.Factor] = true
	}

	seen := make(map[string]bool, len(recommendationRules))
	recommendations := make([]string, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.Category != "" && rule.Category != category {
			continue
		}
		if rule.Factor != "" && !present[rule.Factor] {
			continue
		}
		if seen[rule.Text] {
			continue
		}

		seen[rule.Text] = true
		recommendations = append(recommendations, rule.Text)
	}

	return recommendations
}
