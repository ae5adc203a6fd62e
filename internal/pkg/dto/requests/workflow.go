package requests

import "intake-service/internal/app/models"

// ApproveSubmission leaves a field untouched when it is nil.
type ApproveSubmission struct {
	AssignedDoctor *string      `json:"assigned_doctor,omitempty"`
	FollowUp       *string      `json:"follow_up,omitempty" validate:"omitempty,schedule_label"`
	RefillReminder *string      `json:"refill_reminder,omitempty" validate:"omitempty,schedule_label"`
	ProviderNote   *string      `json:"provider_note,omitempty"`
	Actor          models.Actor `json:"-"`
}

type RejectSubmission struct {
	Reason string       `json:"reason,omitempty"`
	Actor  models.Actor `json:"-"`
}

type FinishTask struct {
	ClinicalMedication string       `json:"clinical_medication"`
	ClinicalTreatment  string       `json:"clinical_treatment"`
	FollowUp           *string      `json:"follow_up,omitempty" validate:"omitempty,schedule_label"`
	RefillReminder     *string      `json:"refill_reminder,omitempty" validate:"omitempty,schedule_label"`
	Actor              models.Actor `json:"-"`
}

type SendMessage struct {
	Text  string       `json:"text" validate:"required"`
	Actor models.Actor `json:"-"`
}

type ReassignDoctor struct {
	DoctorID string       `json:"doctor_id" validate:"required"`
	Actor    models.Actor `json:"-"`
}
