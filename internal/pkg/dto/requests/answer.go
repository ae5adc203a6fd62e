package requests

import (
	"bytes"
	"errors"
	"intake-service/internal/app/models"

	"github.com/goccy/go-json"
)

// AnswerValue is the transport form of an answer: either a JSON string or
// a JSON array of strings.
type AnswerValue struct {
	Text    string
	Options []string
	IsList  bool
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*a = AnswerValue{Text: text}
		return nil
	case '[':
		var options []string
		if err := json.Unmarshal(trimmed, &options); err != nil {
			return err
		}
		*a = AnswerValue{Options: options, IsList: true}
		return nil
	}
	return errors.New("answer must be a string or an array of strings")
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.IsList {
		if a.Options == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Options)
	}
	return json.Marshal(a.Text)
}

func (a AnswerValue) ToModel() models.AnswerValue {
	if a.IsList {
		return models.MultiSelectAnswer(a.Options...)
	}
	return models.TextAnswer(a.Text)
}

type AppendAnswer struct {
	ID           string       `json:"id,omitempty"`
	CategoryID   string       `json:"category_id,omitempty"`
	QuestionID   string       `json:"question_id,omitempty"`
	QuestionText string       `json:"question_text" validate:"required"`
	Answer       AnswerValue  `json:"answer"`
	Actor        models.Actor `json:"-"`
}

type EditAnswer struct {
	QuestionText string       `json:"question_text" validate:"required"`
	Answer       AnswerValue  `json:"answer"`
	Actor        models.Actor `json:"-"`
}

type DiscontinueAnswer struct {
	Reason string       `json:"reason" validate:"required"`
	Actor  models.Actor `json:"-"`
}

type AttachPrescription struct {
	Medication        string       `json:"medication" validate:"required"`
	Dosage            string       `json:"dosage,omitempty"`
	Frequency         string       `json:"frequency,omitempty"`
	Duration          string       `json:"duration,omitempty"`
	Refills           int          `json:"refills" validate:"min=0"`
	Instructions      string       `json:"instructions,omitempty"`
	TreatmentOptionID string       `json:"treatment_option_id,omitempty"`
	Actor             models.Actor `json:"-"`
}

func (r *AttachPrescription) ToModel() models.PrescriptionDetails {
	return models.PrescriptionDetails{
		Medication:        r.Medication,
		Dosage:            r.Dosage,
		Frequency:         r.Frequency,
		Duration:          r.Duration,
		Refills:           r.Refills,
		Instructions:      r.Instructions,
		TreatmentOptionID: r.TreatmentOptionID,
	}
}
