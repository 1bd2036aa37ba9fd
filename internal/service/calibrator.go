package service

import (
	"math"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// Probability thresholds mapping model output to risk categories. Both
// boundaries promote upward: exactly 0.40 is Medium, exactly 0.70 is High.
const (
	MediumRiskThreshold = 0.40
	HighRiskThreshold   = 0.70
)

// RiskScore converts a probability to the 0-100 display scale.
func RiskScore(probability float64) int {
	score := int(math.Round(probability * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Categorize maps a probability onto the three-level risk scale.
func Categorize(probability float64) domain.RiskLevel {
	switch {
	case probability >= HighRiskThreshold:
		return domain.RISK_HIGH
	case probability >= MediumRiskThreshold:
		return domain.RISK_MEDIUM
	default:
		return domain.RISK_LOW
	}
}
