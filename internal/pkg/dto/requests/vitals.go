package requests

import "intake-service/internal/app/models"

// UpdateVitals carries the full set of vitals fields. An omitted field is
// submitted as an empty value.
type UpdateVitals struct {
	Weight                 string       `json:"weight"`
	Height                 string       `json:"height"`
	Temperature            string       `json:"temperature"`
	BloodPressureSystolic  string       `json:"blood_pressure_systolic"`
	BloodPressureDiastolic string       `json:"blood_pressure_diastolic"`
	RespiratoryRate        string       `json:"respiratory_rate"`
	Pulse                  string       `json:"pulse"`
	BloodSugar             string       `json:"blood_sugar"`
	Fasting                string       `json:"fasting"`
	OxygenSaturation       string       `json:"oxygen_saturation"`
	BMI                    string       `json:"bmi"`
	Notes                  string       `json:"notes" validate:"max=4000"`
	Actor                  models.Actor `json:"-"`
}

func (r *UpdateVitals) ToModel() models.VitalsValues {
	return models.VitalsValues{
		Weight:                 r.Weight,
		Height:                 r.Height,
		Temperature:            r.Temperature,
		BloodPressureSystolic:  r.BloodPressureSystolic,
		BloodPressureDiastolic: r.BloodPressureDiastolic,
		RespiratoryRate:        r.RespiratoryRate,
		Pulse:                  r.Pulse,
		BloodSugar:             r.BloodSugar,
		Fasting:                r.Fasting,
		OxygenSaturation:       r.OxygenSaturation,
		BMI:                    r.BMI,
		Notes:                  r.Notes,
	}
}
