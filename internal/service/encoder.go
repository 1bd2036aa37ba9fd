package service

import (
	"github.com/maternal-risk-mcp-server/internal/domain"
)

// Feature vector layout. The ordering is a contract shared by the encoder,
// the trainer and the factor attributor and must never change between a
// fitted model and the vectors scored against it.
const (
	featAge = iota
	featNumPregnancies
	featTrimester
	featHemoglobin
	featSystolicBP
	featDiastolicBP
	featBloodSugar
	featBMI
	featPreviousComplications
	featIsTeenage
	featIsAdvancedMaternalAge
	featIsMildAnemia
	featIsAnemic
	featIsElevatedBP
	featIsHypertensive
	featIsElevatedSugar
	featIsHyperglycemic
	featIsUnderweight
	featIsObese
	featIsGrandMultipara

	featureCount
)

var featureNames = []string{
	"age",
	"num_pregnancies",
	"trimester",
	"hemoglobin",
	"systolic_bp",
	"diastolic_bp",
	"blood_sugar",
	"bmi",
	"previous_complications",
	"is_teenage",
	"is_advanced_maternal_age",
	"is_mild_anemia",
	"is_anemic",
	"is_elevated_bp",
	"is_hypertensive",
	"is_elevated_sugar",
	"is_hyperglycemic",
	"is_underweight",
	"is_obese",
	"is_grand_multipara",
}

// Fixed clinical reference points for continuous channels. Scaling is
// (value - reference) / span with span equal to the accepted range width,
// so a scaled value is the signed deviation from a healthy measurement.
// Using fixed constants instead of corpus statistics keeps encoding a pure
// function, independent of any fitted artifact.
const (
	refAge         = 27.0
	refPregnancies = 2.0
	refTrimester   = 2.0
	refHemoglobin  = 12.5
	refSystolicBP  = 115.0
	refDiastolicBP = 75.0
	refBloodSugar  = 95.0
	refBMI         = 22.5

	spanAge         = domain.MaxAge - domain.MinAge
	spanPregnancies = domain.MaxPregnancies - domain.MinPregnancies
	spanTrimester   = domain.MaxTrimester - domain.MinTrimester
	spanHemoglobin  = domain.MaxHemoglobin - domain.MinHemoglobin
	spanSystolicBP  = domain.MaxSystolicBP - domain.MinSystolicBP
	spanDiastolicBP = domain.MaxDiastolicBP - domain.MinDiastolicBP
	spanBloodSugar  = domain.MaxBloodSugar - domain.MinBloodSugar
	spanBMI         = domain.MaxBMI - domain.MinBMI
)

// FeatureEncoder turns a validated patient observation into the model's
// feature vector. Encoding is deterministic and never mutates the
// observation.
type FeatureEncoder struct{}

// NewFeatureEncoder creates a new feature encoder
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// FeatureNames returns the stable feature ordering.
func (e *FeatureEncoder) FeatureNames() []string {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return names
}

// Encode validates the observation and produces its feature vector.
// A *domain.ValidationError from the observation is returned unchanged so
// callers can report the offending field.
func (e *FeatureEncoder) Encode(obs *domain.PatientObservation) ([]float64, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	x := make([]float64, featureCount)

	x[featAge] = scale(float64(obs.Age), refAge, spanAge)
	x[featNumPregnancies] = scale(float64(obs.NumPregnancies), refPregnancies, spanPregnancies)
	x[featTrimester] = scale(float64(obs.Trimester), refTrimester, spanTrimester)
	x[featHemoglobin] = scale(obs.Hemoglobin, refHemoglobin, spanHemoglobin)
	x[featSystolicBP] = scale(float64(obs.SystolicBP), refSystolicBP, spanSystolicBP)
	x[featDiastolicBP] = scale(float64(obs.DiastolicBP), refDiastolicBP, spanDiastolicBP)
	x[featBloodSugar] = scale(obs.BloodSugar, refBloodSugar, spanBloodSugar)
	x[featBMI] = scale(obs.BMI, refBMI, spanBMI)
	x[featPreviousComplications] = boolToFloat(obs.PreviousComplications)

	x[featIsTeenage] = boolToFloat(obs.IsTeenage())
	x[featIsAdvancedMaternalAge] = boolToFloat(obs.IsAdvancedMaternalAge())
	x[featIsMildAnemia] = boolToFloat(obs.IsMildAnemia())
	x[featIsAnemic] = boolToFloat(obs.IsAnemic())
	x[featIsElevatedBP] = boolToFloat(obs.IsElevatedBP())
	x[featIsHypertensive] = boolToFloat(obs.IsHypertensive())
	x[featIsElevatedSugar] = boolToFloat(obs.IsElevatedSugar())
	x[featIsHyperglycemic] = boolToFloat(obs.IsHyperglycemic())
	x[featIsUnderweight] = boolToFloat(obs.IsUnderweight())
	x[featIsObese] = boolToFloat(obs.IsObese())
	x[featIsGrandMultipara] = boolToFloat(obs.IsGrandMultipara())

	return x, nil
}

func scale(value, reference, span float64) float64 {
	return (value - reference) / span
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
