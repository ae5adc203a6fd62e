package models

import "time"

type SubmissionStatus string

const (
	SubmissionStatusNew      SubmissionStatus = "new"
	SubmissionStatusReviewed SubmissionStatus = "reviewed"
	SubmissionStatusArchived SubmissionStatus = "archived"
	SubmissionStatusClosed   SubmissionStatus = "closed"
)

type SubmissionKind string

const (
	SubmissionKindIntake         SubmissionKind = "intake"
	SubmissionKindServiceRequest SubmissionKind = "service_request"
)

type ChatMessage struct {
	ID         string    `json:"id" bson:"id"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	SenderName string    `json:"senderName" bson:"senderName"`
	SenderRole string    `json:"senderRole" bson:"senderRole"`
	Text       string    `json:"text" bson:"text"`
	SentAt     time.Time `json:"sentAt" bson:"sentAt"`
}

type StatusChange struct {
	From      SubmissionStatus `json:"from" bson:"from"`
	To        SubmissionStatus `json:"to" bson:"to"`
	ChangedBy Actor            `json:"changedBy" bson:"changedBy"`
	ChangedAt time.Time        `json:"changedAt" bson:"changedAt"`
	Reason    string           `json:"reason,omitempty" bson:"reason,omitempty"`
}

type SurveySubmission struct {
	ID                 string                  `json:"id" bson:"_id,omitempty"`
	AccountID          string                  `json:"accountId" bson:"accountId"`
	Kind               SubmissionKind          `json:"kind" bson:"kind"`
	Status             SubmissionStatus        `json:"status" bson:"status"`
	AssignedDoctor     string                  `json:"assignedDoctor,omitempty" bson:"assignedDoctor,omitempty"`
	FollowUp           string                  `json:"followUp,omitempty" bson:"followUp,omitempty"`
	RefillReminder     string                  `json:"refillReminder,omitempty" bson:"refillReminder,omitempty"`
	ClinicalMedication string                  `json:"clinicalMedication,omitempty" bson:"clinicalMedication,omitempty"`
	ClinicalTreatment  string                  `json:"clinicalTreatment,omitempty" bson:"clinicalTreatment,omitempty"`
	ProviderNote       string                  `json:"providerNote,omitempty" bson:"providerNote,omitempty"`
	Messages           AppendLog[ChatMessage]  `json:"messages" bson:"messages"`
	Answers            []AnswerItem            `json:"answers" bson:"answers"`
	StatusHistory      AppendLog[StatusChange] `json:"statusHistory" bson:"statusHistory"`
	Version            int64                   `json:"version" bson:"version"`
	TimeModel          `bson:",inline"`
}

func (s *SurveySubmission) IsClosed() bool {
	return s.Status == SubmissionStatusClosed
}
