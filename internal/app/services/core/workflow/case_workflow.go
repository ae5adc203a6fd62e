package workflow

import (
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/answers"
	"intake-service/internal/app/services/core/assignments"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/scheduling"
	"intake-service/internal/pkg/utils"
	"strings"
	"time"
)

const (
	actionApprove = "approve"
	actionReject  = "reject"
	actionFinish  = "finish"
)

// ApproveInput leaves a field untouched when it is nil.
type ApproveInput struct {
	AssignedDoctor *string
	FollowUp       *string
	RefillReminder *string
	ProviderNote   *string
}

type FinishInput struct {
	ClinicalMedication string
	ClinicalTreatment  string
	FollowUp           *string
	RefillReminder     *string
}

// Outcome describes what a transition changed besides the submission
// itself, so callers can publish the matching events.
type Outcome struct {
	From             models.SubmissionStatus
	To               models.SubmissionStatus
	AccountActivated bool
	AccountRejected  bool
	DoctorChanged    bool
}

func (o *Outcome) StatusChanged() bool {
	return o.From != o.To
}

// CaseWorkflow drives the submission status machine:
// new -> reviewed | archived | closed, reviewed -> reviewed | archived | closed,
// closed -> archived. Archived is terminal.
type CaseWorkflow struct {
	now          func() time.Time
	newMessageID func() string
	ledger       *answers.Ledger
}

func NewCaseWorkflow(ledger *answers.Ledger) *CaseWorkflow {
	return NewCaseWorkflowWithClock(ledger, time.Now, utils.GenerateMessageID)
}

func NewCaseWorkflowWithClock(ledger *answers.Ledger, now func() time.Time, newMessageID func() string) *CaseWorkflow {
	return &CaseWorkflow{now: now, newMessageID: newMessageID, ledger: ledger}
}

// Approve reviews a new submission, or updates an already reviewed one.
// A non-active account is activated.
func (w *CaseWorkflow) Approve(submission *models.SurveySubmission, account *models.PatientAccount, input ApproveInput, actor models.Actor) (*Outcome, error) {
	switch submission.Status {
	case models.SubmissionStatusNew, models.SubmissionStatusReviewed:
	default:
		return nil, exceptions.ErrIllegalTransition(actionApprove, string(submission.Status))
	}

	now := w.now()
	if err := w.applySchedule(submission, account, input.FollowUp, input.RefillReminder, now); err != nil {
		return nil, err
	}

	outcome := &Outcome{From: submission.Status, To: models.SubmissionStatusReviewed}
	if !account.IsActive() {
		account.AccountStatus = models.AccountStatusActive
		outcome.AccountActivated = true
	}
	if input.AssignedDoctor != nil {
		outcome.DoctorChanged = assignments.SyncDoctor(account, submission, *input.AssignedDoctor)
	}
	if input.ProviderNote != nil {
		submission.ProviderNote = *input.ProviderNote
	}

	w.transition(submission, models.SubmissionStatusReviewed, actor, "", now)
	account.SetUpdatedAt(now)
	return outcome, nil
}

// Reject archives the submission. An intake whose account was never
// activated also rejects the account.
func (w *CaseWorkflow) Reject(submission *models.SurveySubmission, account *models.PatientAccount, reason string, actor models.Actor) (*Outcome, error) {
	if submission.Status == models.SubmissionStatusArchived {
		return nil, exceptions.ErrIllegalTransition(actionReject, string(submission.Status))
	}

	now := w.now()
	outcome := &Outcome{From: submission.Status, To: models.SubmissionStatusArchived}
	if account != nil && submission.Kind == models.SubmissionKindIntake && account.AccountStatus == models.AccountStatusPending {
		account.AccountStatus = models.AccountStatusRejected
		account.SetUpdatedAt(now)
		outcome.AccountRejected = true
	}

	w.transition(submission, models.SubmissionStatusArchived, actor, reason, now)
	return outcome, nil
}

// FinishTask closes the case and prepends a locked summary item to the
// current medication category. A blank medication leaves the submission
// untouched.
func (w *CaseWorkflow) FinishTask(submission *models.SurveySubmission, account *models.PatientAccount, input FinishInput, currentMedication *models.Category, actor models.Actor) (*Outcome, error) {
	if strings.TrimSpace(input.ClinicalMedication) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientMedicationRequired)
	}
	switch submission.Status {
	case models.SubmissionStatusArchived, models.SubmissionStatusClosed:
		return nil, exceptions.ErrIllegalTransition(actionFinish, string(submission.Status))
	}
	if currentMedication == nil {
		return nil, exceptions.ErrCategoryNotFound(constvars.CategoryNameCurrentMedication)
	}

	now := w.now()
	if err := w.applySchedule(submission, account, input.FollowUp, input.RefillReminder, now); err != nil {
		return nil, err
	}

	summary := models.AnswerItem{
		CategoryID:   currentMedication.ID,
		QuestionText: input.ClinicalMedication,
		Answer:       models.TextAnswer(input.ClinicalTreatment),
		IsLocked:     true,
	}
	updated, err := w.ledger.Append(submission.Answers, summary, actor)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{From: submission.Status, To: models.SubmissionStatusClosed}
	submission.Answers = updated
	submission.ClinicalMedication = input.ClinicalMedication
	submission.ClinicalTreatment = input.ClinicalTreatment
	w.transition(submission, models.SubmissionStatusClosed, actor, "", now)
	if account != nil {
		account.SetUpdatedAt(now)
	}
	return outcome, nil
}

// SendMessage appends a chat message. Closed cases take no new messages.
func (w *CaseWorkflow) SendMessage(submission *models.SurveySubmission, text string, actor models.Actor) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientMessageTextRequired)
	}
	if err := EnsureClinicalUpdatable(submission); err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		ID:         w.newMessageID(),
		SenderID:   actor.ID,
		SenderName: actor.Name,
		SenderRole: actor.Role,
		Text:       text,
		SentAt:     w.now(),
	}
	submission.Messages.Append(message)
	submission.SetUpdatedAt(message.SentAt)
	return &message, nil
}

// EnsureClinicalUpdatable rejects follow-up, refill, medication, treatment
// and message changes on a closed submission.
func EnsureClinicalUpdatable(submission *models.SurveySubmission) error {
	if submission.IsClosed() {
		return exceptions.ErrCaseClosed("update clinical fields of")
	}
	return nil
}

// applySchedule resolves the labels before touching any record so an
// invalid label changes nothing.
func (w *CaseWorkflow) applySchedule(submission *models.SurveySubmission, account *models.PatientAccount, followUp, refillReminder *string, now time.Time) error {
	var followUpDate, refillDate *time.Time
	var err error
	if followUp != nil {
		if followUpDate, err = scheduling.ResolveLabel(*followUp, now); err != nil {
			return err
		}
	}
	if refillReminder != nil {
		if refillDate, err = scheduling.ResolveLabel(*refillReminder, now); err != nil {
			return err
		}
	}

	if followUp != nil {
		submission.FollowUp = *followUp
		if account != nil && !sameDate(account.FollowUpDate, followUpDate) {
			account.FollowUpDate = followUpDate
			account.FollowUpRemindedAt = nil
		}
	}
	if refillReminder != nil {
		submission.RefillReminder = *refillReminder
		if account != nil && !sameDate(account.RefillReminderDate, refillDate) {
			account.RefillReminderDate = refillDate
			account.RefillRemindedAt = nil
		}
	}
	return nil
}

func (w *CaseWorkflow) transition(submission *models.SurveySubmission, to models.SubmissionStatus, actor models.Actor, reason string, now time.Time) {
	if submission.Status != to {
		submission.StatusHistory.Append(models.StatusChange{
			From:      submission.Status,
			To:        to,
			ChangedBy: actor,
			ChangedAt: now,
			Reason:    reason,
		})
	}
	submission.Status = to
	submission.SetUpdatedAt(now)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
