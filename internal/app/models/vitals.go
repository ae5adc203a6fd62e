package models

import "time"

type VitalsField string

const (
	VitalsFieldWeight                 VitalsField = "weight"
	VitalsFieldHeight                 VitalsField = "height"
	VitalsFieldTemperature            VitalsField = "temperature"
	VitalsFieldBloodPressureSystolic  VitalsField = "bloodPressureSystolic"
	VitalsFieldBloodPressureDiastolic VitalsField = "bloodPressureDiastolic"
	VitalsFieldRespiratoryRate        VitalsField = "respiratoryRate"
	VitalsFieldPulse                  VitalsField = "pulse"
	VitalsFieldBloodSugar             VitalsField = "bloodSugar"
	VitalsFieldFasting                VitalsField = "fasting"
	VitalsFieldOxygenSaturation       VitalsField = "oxygenSaturation"
	VitalsFieldBMI                    VitalsField = "bmi"
	VitalsFieldNotes                  VitalsField = "notes"
)

// VitalsFields lists every tracked vitals field in display order.
var VitalsFields = []VitalsField{
	VitalsFieldWeight,
	VitalsFieldHeight,
	VitalsFieldTemperature,
	VitalsFieldBloodPressureSystolic,
	VitalsFieldBloodPressureDiastolic,
	VitalsFieldRespiratoryRate,
	VitalsFieldPulse,
	VitalsFieldBloodSugar,
	VitalsFieldFasting,
	VitalsFieldOxygenSaturation,
	VitalsFieldBMI,
	VitalsFieldNotes,
}

// VitalsValues holds the measured values as entered. Values are opaque
// strings and are never parsed or converted.
type VitalsValues struct {
	Weight                 string `json:"weight" bson:"weight"`
	Height                 string `json:"height" bson:"height"`
	Temperature            string `json:"temperature" bson:"temperature"`
	BloodPressureSystolic  string `json:"bloodPressureSystolic" bson:"bloodPressureSystolic"`
	BloodPressureDiastolic string `json:"bloodPressureDiastolic" bson:"bloodPressureDiastolic"`
	RespiratoryRate        string `json:"respiratoryRate" bson:"respiratoryRate"`
	Pulse                  string `json:"pulse" bson:"pulse"`
	BloodSugar             string `json:"bloodSugar" bson:"bloodSugar"`
	Fasting                string `json:"fasting" bson:"fasting"`
	OxygenSaturation       string `json:"oxygenSaturation" bson:"oxygenSaturation"`
	BMI                    string `json:"bmi" bson:"bmi"`
	Notes                  string `json:"notes" bson:"notes"`
}

func (v VitalsValues) Get(field VitalsField) string {
	switch field {
	case VitalsFieldWeight:
		return v.Weight
	case VitalsFieldHeight:
		return v.Height
	case VitalsFieldTemperature:
		return v.Temperature
	case VitalsFieldBloodPressureSystolic:
		return v.BloodPressureSystolic
	case VitalsFieldBloodPressureDiastolic:
		return v.BloodPressureDiastolic
	case VitalsFieldRespiratoryRate:
		return v.RespiratoryRate
	case VitalsFieldPulse:
		return v.Pulse
	case VitalsFieldBloodSugar:
		return v.BloodSugar
	case VitalsFieldFasting:
		return v.Fasting
	case VitalsFieldOxygenSaturation:
		return v.OxygenSaturation
	case VitalsFieldBMI:
		return v.BMI
	case VitalsFieldNotes:
		return v.Notes
	}
	return ""
}

// Set assigns value to field. Unknown fields are ignored.
func (v *VitalsValues) Set(field VitalsField, value string) {
	switch field {
	case VitalsFieldWeight:
		v.Weight = value
	case VitalsFieldHeight:
		v.Height = value
	case VitalsFieldTemperature:
		v.Temperature = value
	case VitalsFieldBloodPressureSystolic:
		v.BloodPressureSystolic = value
	case VitalsFieldBloodPressureDiastolic:
		v.BloodPressureDiastolic = value
	case VitalsFieldRespiratoryRate:
		v.RespiratoryRate = value
	case VitalsFieldPulse:
		v.Pulse = value
	case VitalsFieldBloodSugar:
		v.BloodSugar = value
	case VitalsFieldFasting:
		v.Fasting = value
	case VitalsFieldOxygenSaturation:
		v.OxygenSaturation = value
	case VitalsFieldBMI:
		v.BMI = value
	case VitalsFieldNotes:
		v.Notes = value
	}
}

type VitalsDelta struct {
	Field     VitalsField `json:"field" bson:"field"`
	OldValue  string      `json:"oldValue" bson:"oldValue"`
	NewValue  string      `json:"newValue" bson:"newValue"`
	ChangedBy Actor       `json:"changedBy" bson:"changedBy"`
	ChangedAt time.Time   `json:"changedAt" bson:"changedAt"`
}

// VitalsRecord is the single current vitals snapshot of a patient.
type VitalsRecord struct {
	ID            string                 `json:"id" bson:"_id,omitempty"`
	PatientID     string                 `json:"patientId" bson:"patientId"`
	Values        VitalsValues           `json:"values" bson:",inline"`
	CreatedBy     Actor                  `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedBy     *Actor                 `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt     *time.Time             `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	ChangeHistory AppendLog[VitalsDelta] `json:"changeHistory" bson:"changeHistory"`
	Version       int64                  `json:"version" bson:"version"`
}

// VitalsSnapshot is the record state right after one historical save.
type VitalsSnapshot struct {
	ChangedBy     Actor         `json:"changedBy"`
	ChangedAt     time.Time     `json:"changedAt"`
	ChangedFields []VitalsField `json:"changedFields"`
	Values        VitalsValues  `json:"values"`
}
