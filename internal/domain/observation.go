package domain

import (
	"fmt"
)

// Accepted measurement ranges for a patient observation. Observations
// outside these ranges are rejected before they reach the scoring model.
const (
	MinAge = 15
	MaxAge = 50

	MinPregnancies = 1
	MaxPregnancies = 15

	MinTrimester = 1
	MaxTrimester = 3

	MinHemoglobin = 5.0
	MaxHemoglobin = 18.0

	MinSystolicBP = 80
	MaxSystolicBP = 200

	MinDiastolicBP = 50
	MaxDiastolicBP = 130

	MinBloodSugar = 60.0
	MaxBloodSugar = 300.0

	MinBMI = 12.0
	MaxBMI = 50.0
)

// Clinical thresholds for the derived risk indicators. These are fixed by
// medical convention, not learned from data.
const (
	TeenageAgeLimit       = 18
	AdvancedMaternalAge   = 35
	SevereAnemiaHgb       = 10.0
	ModerateAnemiaHgb     = 11.0
	HypertensiveSystolic  = 140
	HypertensiveDiastolic = 90
	ElevatedSystolic      = 130
	ElevatedDiastolic     = 85
	HyperglycemicSugar    = 140.0
	ElevatedSugar         = 125.0
	UnderweightBMI        = 18.5
	ObeseBMI              = 30.0
	GrandMultiparity      = 5
)

// PatientObservation captures one set of clinical measurements for a
// pregnant patient. All fields are required; bool zero value is a valid
// "no previous complications".
type PatientObservation struct {
	Age                   int     `json:"age"`
	NumPregnancies        int     `json:"num_pregnancies"`
	Trimester             int     `json:"trimester"`
	Hemoglobin            float64 `json:"hemoglobin"`
	SystolicBP            int     `json:"systolic_bp"`
	DiastolicBP           int     `json:"diastolic_bp"`
	BloodSugar            float64 `json:"blood_sugar"`
	BMI                   float64 `json:"bmi"`
	PreviousComplications bool    `json:"previous_complications"`
}

// Validate ensures every measurement lies inside its accepted clinical
// range. The first violation is reported as a *ValidationError naming the
// offending field; an invalid observation must never reach the model.
func (o *PatientObservation) Validate() error {
	if o.Age < MinAge || o.Age > MaxAge {
		return NewValidationError("age",
			fmt.Sprintf("must be between %d and %d years", MinAge, MaxAge), o.Age)
	}

	if o.NumPregnancies < MinPregnancies || o.NumPregnancies > MaxPregnancies {
		return NewValidationError("num_pregnancies",
			fmt.Sprintf("must be between %d and %d", MinPregnancies, MaxPregnancies), o.NumPregnancies)
	}

	if o.Trimester < MinTrimester || o.Trimester > MaxTrimester {
		return NewValidationError("trimester",
			fmt.Sprintf("must be between %d and %d", MinTrimester, MaxTrimester), o.Trimester)
	}

	if o.Hemoglobin < MinHemoglobin || o.Hemoglobin > MaxHemoglobin {
		return NewValidationError("hemoglobin",
			fmt.Sprintf("must be between %.1f and %.1f g/dL", MinHemoglobin, MaxHemoglobin), o.Hemoglobin)
	}

	if o.SystolicBP < MinSystolicBP || o.SystolicBP > MaxSystolicBP {
		return NewValidationError("systolic_bp",
			fmt.Sprintf("must be between %d and %d mmHg", MinSystolicBP, MaxSystolicBP), o.SystolicBP)
	}

	if o.DiastolicBP < MinDiastolicBP || o.DiastolicBP > MaxDiastolicBP {
		return NewValidationError("diastolic_bp",
			fmt.Sprintf("must be between %d and %d mmHg", MinDiastolicBP, MaxDiastolicBP), o.DiastolicBP)
	}

	if o.BloodSugar < MinBloodSugar || o.BloodSugar > MaxBloodSugar {
		return NewValidationError("blood_sugar",
			fmt.Sprintf("must be between %.0f and %.0f mg/dL", MinBloodSugar, MaxBloodSugar), o.BloodSugar)
	}

	if o.BMI < MinBMI || o.BMI > MaxBMI {
		return NewValidationError("bmi",
			fmt.Sprintf("must be between %.1f and %.1f", MinBMI, MaxBMI), o.BMI)
	}

	return nil
}

// IsTeenage reports a teenage pregnancy (age below 18).
func (o *PatientObservation) IsTeenage() bool {
	return o.Age < TeenageAgeLimit
}

// IsAdvancedMaternalAge reports advanced maternal age (35 or older).
func (o *PatientObservation) IsAdvancedMaternalAge() bool {
	return o.Age >= AdvancedMaternalAge
}

// IsAnemic reports severe anemia (hemoglobin below 10 g/dL).
func (o *PatientObservation) IsAnemic() bool {
	return o.Hemoglobin < SevereAnemiaHgb
}

// IsMildAnemia reports any anemia (hemoglobin below 11 g/dL). Severe
// anemia implies mild anemia.
func (o *PatientObservation) IsMildAnemia() bool {
	return o.Hemoglobin < ModerateAnemiaHgb
}

// IsHypertensive reports pregnancy hypertension (140/90 or above).
func (o *PatientObservation) IsHypertensive() bool {
	return o.SystolicBP >= HypertensiveSystolic || o.DiastolicBP >= HypertensiveDiastolic
}

// IsElevatedBP reports blood pressure at or above 130/85. Hypertension
// implies elevated blood pressure.
func (o *PatientObservation) IsElevatedBP() bool {
	return o.SystolicBP >= ElevatedSystolic || o.DiastolicBP >= ElevatedDiastolic
}

// IsHyperglycemic reports blood sugar in the gestational diabetes range
// (140 mg/dL or above).
func (o *PatientObservation) IsHyperglycemic() bool {
	return o.BloodSugar >= HyperglycemicSugar
}

// IsElevatedSugar reports blood sugar at or above the pre-diabetic
// 125 mg/dL mark. Hyperglycemia implies elevated sugar.
func (o *PatientObservation) IsElevatedSugar() bool {
	return o.BloodSugar >= ElevatedSugar
}

// IsUnderweight reports BMI below 18.5.
func (o *PatientObservation) IsUnderweight() bool {
	return o.BMI < UnderweightBMI
}

// IsObese reports BMI of 30 or above.
func (o *PatientObservation) IsObese() bool {
	return o.BMI >= ObeseBMI
}

// IsGrandMultipara reports grand multiparity (more than 5 pregnancies).
func (o *PatientObservation) IsGrandMultipara() bool {
	return o.NumPregnancies > GrandMultiparity
}
