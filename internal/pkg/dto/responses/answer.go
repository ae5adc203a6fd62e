package responses

import "time"

type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type EditEntry struct {
	PreviousQuestionText string      `json:"previous_question_text"`
	NewQuestionText      string      `json:"new_question_text"`
	PreviousAnswer       interface{} `json:"previous_answer"`
	NewAnswer            interface{} `json:"new_answer"`
	EditedBy             Actor       `json:"edited_by"`
	EditedAt             time.Time   `json:"edited_at"`
}

type Prescription struct {
	Medication        string    `json:"medication"`
	Dosage            string    `json:"dosage,omitempty"`
	Frequency         string    `json:"frequency,omitempty"`
	Duration          string    `json:"duration,omitempty"`
	Refills           int       `json:"refills"`
	Instructions      string    `json:"instructions,omitempty"`
	TreatmentOptionID string    `json:"treatment_option_id,omitempty"`
	PrescribedBy      Actor     `json:"prescribed_by"`
	PrescribedAt      time.Time `json:"prescribed_at"`
}

// AnswerItem renders the answer as a string, or as a list of strings for
// multi select answers.
type AnswerItem struct {
	ID                  string        `json:"id"`
	CategoryID          string        `json:"category_id,omitempty"`
	QuestionID          string        `json:"question_id,omitempty"`
	QuestionText        string        `json:"question_text"`
	Answer              interface{}   `json:"answer"`
	AddedBy             Actor         `json:"added_by"`
	AddedAt             time.Time     `json:"added_at"`
	EditedBy            *Actor        `json:"edited_by,omitempty"`
	EditedAt            *time.Time    `json:"edited_at,omitempty"`
	EditHistory         []EditEntry   `json:"edit_history"`
	Discontinued        bool          `json:"discontinued"`
	DiscontinuedBy      *Actor        `json:"discontinued_by,omitempty"`
	DiscontinuedAt      *time.Time    `json:"discontinued_at,omitempty"`
	DiscontinueReason   string        `json:"discontinue_reason,omitempty"`
	IsPrescription      bool          `json:"is_prescription"`
	PrescriptionDetails *Prescription `json:"prescription_details,omitempty"`
	IsLocked            bool          `json:"is_locked"`
}

type AnswerGroup struct {
	CategoryID   string       `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Order        int          `json:"order"`
	Items        []AnswerItem `json:"items"`
}

type GroupedAnswers struct {
	SubmissionID string        `json:"submission_id"`
	Groups       []AnswerGroup `json:"groups"`
}
