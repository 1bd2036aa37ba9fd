// Package domain contains core business entities and types for maternal
// health risk prediction during pregnancy.
//
// Risk factors and thresholds follow WHO antenatal care guidelines:
// WHO recommendations on antenatal care for a positive pregnancy experience
// (2016), ISBN 978-92-4-154991-2.
package domain

import (
	"errors"
)

// RiskLevel represents the categorical maternal risk classification.
// Categories are derived from the calibrated model probability and drive
// the urgency of the generated care recommendations.
type RiskLevel string

const (
	RISK_LOW    RiskLevel = "Low"
	RISK_MEDIUM RiskLevel = "Medium"
	RISK_HIGH   RiskLevel = "High"
)

// ImpactLevel represents how strongly a single clinical factor contributes
// to a patient's predicted risk, relative to the other active factors.
type ImpactLevel string

const (
	IMPACT_HIGH   ImpactLevel = "High"
	IMPACT_MEDIUM ImpactLevel = "Medium"
	IMPACT_LOW    ImpactLevel = "Low"
)

// FactorKind identifies a recognized clinical risk factor. The string value
// is the display name shown in reports.
type FactorKind string

const (
	TEENAGE_PREGNANCY      FactorKind = "Teenage Pregnancy"
	ADVANCED_MATERNAL_AGE  FactorKind = "Advanced Maternal Age"
	SEVERE_ANEMIA          FactorKind = "Severe Anemia"
	MODERATE_ANEMIA        FactorKind = "Moderate Anemia"
	HYPERTENSION           FactorKind = "Hypertension"
	ELEVATED_BP            FactorKind = "Elevated Blood Pressure"
	GESTATIONAL_DIABETES   FactorKind = "Gestational Diabetes"
	ELEVATED_BLOOD_SUGAR   FactorKind = "Elevated Blood Sugar"
	UNDERWEIGHT            FactorKind = "Underweight"
	OBESITY                FactorKind = "Obesity"
	PREVIOUS_COMPLICATIONS FactorKind = "Previous Complications"
	GRAND_MULTIPARITY      FactorKind = "Grand Multiparity"
)

// Validation errors for medical data integrity
var (
	ErrInvalidRiskLevel   = errors.New("invalid risk level")
	ErrInvalidImpactLevel = errors.New("invalid impact level")
	ErrInvalidFactorKind  = errors.New("invalid factor kind")
)

// IsValid validates that the RiskLevel is one of the recognized categories.
// Only valid categories may reach clinical reporting.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RISK_LOW, RISK_MEDIUM, RISK_HIGH:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
// Required for proper logging and audit trails in medical software.
func (r RiskLevel) String() string {
	return string(r)
}

// LogFields returns structured logging fields for audit trails.
func (r RiskLevel) LogFields() map[string]any {
	return map[string]any{
		"risk_category":    string(r),
		"is_valid":         r.IsValid(),
		"requires_urgency": r.RequiresUrgentReview(),
	}
}

// RequiresUrgentReview determines whether the category demands immediate
// clinical follow-up. Used for workflow automation and patient safety.
func (r RiskLevel) RequiresUrgentReview() bool {
	switch r {
	case RISK_HIGH:
		return true
	case RISK_LOW, RISK_MEDIUM:
		return false
	default:
		return true // Conservative approach for unknown categories
	}
}

// IsValid validates the impact level.
func (i ImpactLevel) IsValid() bool {
	switch i {
	case IMPACT_HIGH, IMPACT_MEDIUM, IMPACT_LOW:
		return true
	default:
		return false
	}
}

// String returns the string representation of the impact level.
func (i ImpactLevel) String() string {
	return string(i)
}

// IsValid validates the factor kind.
func (f FactorKind) IsValid() bool {
	switch f {
	case TEENAGE_PREGNANCY, ADVANCED_MATERNAL_AGE, SEVERE_ANEMIA, MODERATE_ANEMIA,
		HYPERTENSION, ELEVATED_BP, GESTATIONAL_DIABETES, ELEVATED_BLOOD_SUGAR,
		UNDERWEIGHT, OBESITY, PREVIOUS_COMPLICATIONS, GRAND_MULTIPARITY:
		return true
	default:
		return false
	}
}

// String returns the display name of the factor.
func (f FactorKind) String() string {
	return string(f)
}

// Description returns the clinical explanation attached to the factor in
// patient-facing reports.
func (f FactorKind) Description() string {
	switch f {
	case TEENAGE_PREGNANCY:
		return "Age below 18 increases risk of complications"
	case ADVANCED_MATERNAL_AGE:
		return "Age above 35 associated with increased risks"
	case SEVERE_ANEMIA:
		return "Hemoglobin below 10 g/dL indicates severe anemia"
	case MODERATE_ANEMIA:
		return "Hemoglobin below 11 g/dL indicates anemia"
	case HYPERTENSION:
		return "High blood pressure increases pre-eclampsia risk"
	case ELEVATED_BP:
		return "Blood pressure slightly elevated, needs monitoring"
	case GESTATIONAL_DIABETES:
		return "Blood sugar above 140 indicates gestational diabetes"
	case ELEVATED_BLOOD_SUGAR:
		return "Blood sugar slightly high, further testing recommended"
	case UNDERWEIGHT:
		return "Low BMI may affect fetal growth"
	case OBESITY:
		return "High BMI increases pregnancy complications risk"
	case PREVIOUS_COMPLICATIONS:
		return "History of complications increases current pregnancy risk"
	case GRAND_MULTIPARITY:
		return "Many previous pregnancies increase risk"
	default:
		return "Unknown risk factor"
	}
}
