package requests

import "time"

// WorkflowEvent is the message body published for every case side effect
// other services react to.
type WorkflowEvent struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	SubmissionID string            `json:"submission_id,omitempty"`
	AccountID    string            `json:"account_id,omitempty"`
	DoctorID     string            `json:"doctor_id,omitempty"`
	ActorID      string            `json:"actor_id,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}
