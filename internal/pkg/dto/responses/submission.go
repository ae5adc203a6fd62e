package responses

import "time"

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderRole string    `json:"sender_role"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

type StatusChange struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy Actor     `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Reason    string    `json:"reason,omitempty"`
}

type Submission struct {
	ID                 string         `json:"id"`
	AccountID          string         `json:"account_id"`
	Kind               string         `json:"kind"`
	Status             string         `json:"status"`
	AssignedDoctor     string         `json:"assigned_doctor,omitempty"`
	FollowUp           string         `json:"follow_up,omitempty"`
	RefillReminder     string         `json:"refill_reminder,omitempty"`
	ClinicalMedication string         `json:"clinical_medication,omitempty"`
	ClinicalTreatment  string         `json:"clinical_treatment,omitempty"`
	ProviderNote       string         `json:"provider_note,omitempty"`
	Messages           []ChatMessage  `json:"messages"`
	Answers            []AnswerItem   `json:"answers"`
	StatusHistory      []StatusChange `json:"status_history"`
	Version            int64          `json:"version"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type AccountSubmissions struct {
	AccountID        string       `json:"account_id"`
	AssignedDoctorID string       `json:"assigned_doctor_id,omitempty"`
	Submissions      []Submission `json:"submissions"`
	// OutOfSync lists submissions whose doctor differs from the account's
	OutOfSync []string `json:"out_of_sync"`
}
