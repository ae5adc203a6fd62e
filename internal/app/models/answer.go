package models

import (
	"strings"
	"time"
)

type AnswerValueKind string

const (
	AnswerValueKindText        AnswerValueKind = "text"
	AnswerValueKindMultiSelect AnswerValueKind = "multi_select"
)

// AnswerValue holds either rich text or a list of selected options.
type AnswerValue struct {
	Kind    AnswerValueKind `json:"kind" bson:"kind"`
	Text    string          `json:"text,omitempty" bson:"text,omitempty"`
	Options []string        `json:"options,omitempty" bson:"options,omitempty"`
}

func TextAnswer(text string) AnswerValue {
	return AnswerValue{Kind: AnswerValueKindText, Text: text}
}

func MultiSelectAnswer(options ...string) AnswerValue {
	copied := make([]string, len(options))
	copy(copied, options)
	return AnswerValue{Kind: AnswerValueKindMultiSelect, Options: copied}
}

func (v AnswerValue) IsMultiSelect() bool {
	return v.Kind == AnswerValueKindMultiSelect
}

func (v AnswerValue) Equal(other AnswerValue) bool {
	if v.IsMultiSelect() != other.IsMultiSelect() {
		return false
	}
	if !v.IsMultiSelect() {
		return v.Text == other.Text
	}
	if len(v.Options) != len(other.Options) {
		return false
	}
	for i := range v.Options {
		if v.Options[i] != other.Options[i] {
			return false
		}
	}
	return true
}

func (v AnswerValue) String() string {
	if v.IsMultiSelect() {
		return strings.Join(v.Options, ", ")
	}
	return v.Text
}

type EditEntry struct {
	PreviousQuestionText string      `json:"previousQuestionText" bson:"previousQuestionText"`
	NewQuestionText      string      `json:"newQuestionText" bson:"newQuestionText"`
	PreviousAnswer       AnswerValue `json:"previousAnswer" bson:"previousAnswer"`
	NewAnswer            AnswerValue `json:"newAnswer" bson:"newAnswer"`
	EditedBy             Actor       `json:"editedBy" bson:"editedBy"`
	EditedAt             time.Time   `json:"editedAt" bson:"editedAt"`
}

type PrescriptionDetails struct {
	Medication        string    `json:"medication" bson:"medication"`
	Dosage            string    `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency         string    `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Duration          string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Refills           int       `json:"refills" bson:"refills"`
	Instructions      string    `json:"instructions,omitempty" bson:"instructions,omitempty"`
	TreatmentOptionID string    `json:"treatmentOptionId,omitempty" bson:"treatmentOptionId,omitempty"`
	PrescribedBy      Actor     `json:"prescribedBy" bson:"prescribedBy"`
	PrescribedAt      time.Time `json:"prescribedAt" bson:"prescribedAt"`
}

// AnswerItem is one patient data point of a submission. An empty CategoryID
// or QuestionID means the reference is absent.
type AnswerItem struct {
	ID                  string               `json:"id" bson:"id"`
	CategoryID          string               `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	QuestionID          string               `json:"questionId,omitempty" bson:"questionId,omitempty"`
	QuestionText        string               `json:"questionText" bson:"questionText"`
	Answer              AnswerValue          `json:"answer" bson:"answer"`
	AddedBy             Actor                `json:"addedBy" bson:"addedBy"`
	AddedAt             time.Time            `json:"addedAt" bson:"addedAt"`
	EditedBy            *Actor               `json:"editedBy,omitempty" bson:"editedBy,omitempty"`
	EditedAt            *time.Time           `json:"editedAt,omitempty" bson:"editedAt,omitempty"`
	EditHistory         AppendLog[EditEntry] `json:"editHistory" bson:"editHistory"`
	Discontinued        bool                 `json:"discontinued" bson:"discontinued"`
	DiscontinuedBy      *Actor               `json:"discontinuedBy,omitempty" bson:"discontinuedBy,omitempty"`
	DiscontinuedAt      *time.Time           `json:"discontinuedAt,omitempty" bson:"discontinuedAt,omitempty"`
	DiscontinueReason   string               `json:"discontinueReason,omitempty" bson:"discontinueReason,omitempty"`
	IsPrescription      bool                 `json:"isPrescription" bson:"isPrescription"`
	PrescriptionDetails *PrescriptionDetails `json:"prescriptionDetails,omitempty" bson:"prescriptionDetails,omitempty"`
	IsLocked            bool                 `json:"isLocked" bson:"isLocked"`
}

func FindAnswerItem(items []AnswerItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
