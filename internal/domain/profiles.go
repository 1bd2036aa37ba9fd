package domain

// ExampleProfiles returns the fixed demonstration profiles. The three
// profiles are chosen to land in the High, Low and Medium bands of a
// fitted model.
func ExampleProfiles() []ExampleProfile {
	return []ExampleProfile{
		{
			Name:        "High Risk: Teenage Mother with Anemia",
			Description: "17-year-old with severe anemia and hypertension",
			Data: PatientObservation{
				Age:                   17,
				NumPregnancies:        1,
				Trimester:             2,
				Hemoglobin:            8.5,
				SystolicBP:            150,
				DiastolicBP:           95,
				BloodSugar:            98.0,
				BMI:                   19.2,
				PreviousComplications: false,
			},
		},
		{
			Name:        "Low Risk: Healthy Adult Mother",
			Description: "28-year-old with normal health parameters",
			Data: PatientObservation{
				Age:                   28,
				NumPregnancies:        2,
				Trimester:             2,
				Hemoglobin:            12.5,
				SystolicBP:            118,
				DiastolicBP:           75,
				BloodSugar:            95.0,
				BMI:                   23.5,
				PreviousComplications: false,
			},
		},
		{
			Name:        "Medium Risk: Advanced Maternal Age",
			Description: "36-year-old with elevated blood pressure",
			Data: PatientObservation{
				Age:                   36,
				NumPregnancies:        3,
				Trimester:             3,
				Hemoglobin:            11.2,
				SystolicBP:            135,
				DiastolicBP:           87,
				BloodSugar:            105.0,
				BMI:                   27.8,
				PreviousComplications: false,
			},
		},
	}
}
