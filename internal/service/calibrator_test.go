package service

import (
	"testing"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        domain.RiskLevel
	}{
		{"Zero probability", 0.0, domain.RISK_LOW},
		{"Just below medium threshold", 0.3999, domain.RISK_LOW},
		{"Exactly medium threshold", 0.40, domain.RISK_MEDIUM},
		{"Mid band", 0.55, domain.RISK_MEDIUM},
		{"Just below high threshold", 0.6999, domain.RISK_MEDIUM},
		{"Exactly high threshold", 0.70, domain.RISK_HIGH},
		{"Certain", 1.0, domain.RISK_HIGH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.probability); got != tt.want {
				t.Errorf("Categorize(%v) = %v, want %v", tt.probability, got, tt.want)
			}
		})
	}
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        int
	}{
		{"Zero probability", 0.0, 0},
		{"Rounds down", 0.404, 40},
		{"Rounds half up", 0.405, 41},
		{"High threshold", 0.70, 70},
		{"Certain", 1.0, 100},
		{"Clamped below range", -0.2, 0},
		{"Clamped above range", 1.3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskScore(tt.probability); got != tt.want {
				t.Errorf("RiskScore(%v) = %d, want %d", tt.probability, got, tt.want)
			}
		})
	}
}
