package responses

import "time"

type VitalsValues struct {
	Weight                 string `json:"weight"`
	Height                 string `json:"height"`
	Temperature            string `json:"temperature"`
	BloodPressureSystolic  string `json:"blood_pressure_systolic"`
	BloodPressureDiastolic string `json:"blood_pressure_diastolic"`
	RespiratoryRate        string `json:"respiratory_rate"`
	Pulse                  string `json:"pulse"`
	BloodSugar             string `json:"blood_sugar"`
	Fasting                string `json:"fasting"`
	OxygenSaturation       string `json:"oxygen_saturation"`
	BMI                    string `json:"bmi"`
	Notes                  string `json:"notes"`
}

type VitalsDelta struct {
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy Actor     `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type Vitals struct {
	PatientID     string        `json:"patient_id"`
	Values        VitalsValues  `json:"values"`
	CreatedBy     Actor         `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedBy     *Actor        `json:"updated_by,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
	ChangeHistory []VitalsDelta `json:"change_history"`
	Version       int64         `json:"version"`
}

type VitalsUpdate struct {
	Vitals Vitals        `json:"vitals"`
	Deltas []VitalsDelta `json:"deltas"`
}

type VitalsSnapshot struct {
	ChangedBy     Actor        `json:"changed_by"`
	ChangedAt     time.Time    `json:"changed_at"`
	ChangedFields []string     `json:"changed_fields"`
	Values        VitalsValues `json:"values"`
}
