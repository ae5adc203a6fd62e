package workflow

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/answers"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

const actionMessage = "message"

var (
	workflowUsecaseInstance contracts.WorkflowUsecase
	onceWorkflowUsecase     sync.Once
)

type workflowUsecase struct {
	SubmissionRepository contracts.SubmissionRepository
	AccountRepository    contracts.AccountRepository
	CategoryCatalog      contracts.CategoryCatalog
	Transactor           contracts.Transactor
	WorkflowPublisher    contracts.WorkflowPublisher
	CaseWorkflow         *CaseWorkflow
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewWorkflowUsecase(
	submissionRepository contracts.SubmissionRepository,
	accountRepository contracts.AccountRepository,
	categoryCatalog contracts.CategoryCatalog,
	transactor contracts.Transactor,
	workflowPublisher contracts.WorkflowPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WorkflowUsecase {
	onceWorkflowUsecase.Do(func() {
		workflowUsecaseInstance = newWorkflowUsecase(
			submissionRepository,
			accountRepository,
			categoryCatalog,
			transactor,
			workflowPublisher,
			NewCaseWorkflow(answers.NewLedger()),
			internalConfig,
			logger,
		)
	})
	return workflowUsecaseInstance
}

func newWorkflowUsecase(
	submissionRepository contracts.SubmissionRepository,
	accountRepository contracts.AccountRepository,
	categoryCatalog contracts.CategoryCatalog,
	transactor contracts.Transactor,
	workflowPublisher contracts.WorkflowPublisher,
	caseWorkflow *CaseWorkflow,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *workflowUsecase {
	return &workflowUsecase{
		SubmissionRepository: submissionRepository,
		AccountRepository:    accountRepository,
		CategoryCatalog:      categoryCatalog,
		Transactor:           transactor,
		WorkflowPublisher:    workflowPublisher,
		CaseWorkflow:         caseWorkflow,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *workflowUsecase) Approve(ctx context.Context, submissionID string, request *requests.ApproveSubmission) (*responses.Submission, error) {
	input := ApproveInput{
		AssignedDoctor: request.AssignedDoctor,
		FollowUp:       request.FollowUp,
		RefillReminder: request.RefillReminder,
		ProviderNote:   request.ProviderNote,
	}

	var outcome *Outcome
	submission, err := uc.transact(ctx, submissionID, actionApprove, func(submission *models.SurveySubmission, account *models.PatientAccount) (bool, error) {
		var err error
		outcome, err = uc.CaseWorkflow.Approve(submission, account, input, request.Actor)
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}

	events := uc.transitionEvents(submission, outcome, request.Actor, "")
	if outcome.AccountActivated {
		events = append(events, newEvent(constvars.WorkflowEventAccountActivated, submission, request.Actor))
	}
	if outcome.DoctorChanged {
		events = append(events, newEvent(constvars.WorkflowEventDoctorAssigned, submission, request.Actor))
	}
	uc.publish(ctx, events...)

	return utils.ConvertSubmissionToResponse(submission), nil
}

func (uc *workflowUsecase) Reject(ctx context.Context, submissionID string, request *requests.RejectSubmission) (*responses.Submission, error) {
	var outcome *Outcome
	submission, err := uc.transact(ctx, submissionID, actionReject, func(submission *models.SurveySubmission, account *models.PatientAccount) (bool, error) {
		var err error
		outcome, err = uc.CaseWorkflow.Reject(submission, account, request.Reason, request.Actor)
		if err != nil {
			return false, err
		}
		return outcome.AccountRejected, nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.transitionEvents(submission, outcome, request.Actor, request.Reason)...)
	return utils.ConvertSubmissionToResponse(submission), nil
}

func (uc *workflowUsecase) FinishTask(ctx context.Context, submissionID string, request *requests.FinishTask) (*responses.Submission, error) {
	requestID := utils.GetRequestID(ctx)

	category, err := uc.CategoryCatalog.FindByName(ctx, constvars.CategoryNameCurrentMedication)
	if err != nil {
		uc.Log.Error("workflowUsecase.FinishTask error calling CategoryCatalog.FindByName",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCategoryNameKey, constvars.CategoryNameCurrentMedication),
			zap.Error(err),
		)
		return nil, err
	}

	input := FinishInput{
		ClinicalMedication: request.ClinicalMedication,
		ClinicalTreatment:  request.ClinicalTreatment,
		FollowUp:           request.FollowUp,
		RefillReminder:     request.RefillReminder,
	}

	var outcome *Outcome
	submission, err := uc.transact(ctx, submissionID, actionFinish, func(submission *models.SurveySubmission, account *models.PatientAccount) (bool, error) {
		var err error
		outcome, err = uc.CaseWorkflow.FinishTask(submission, account, input, category, request.Actor)
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.transitionEvents(submission, outcome, request.Actor, "")...)
	return utils.ConvertSubmissionToResponse(submission), nil
}

func (uc *workflowUsecase) SendMessage(ctx context.Context, submissionID string, request *requests.SendMessage) (*responses.ChatMessage, error) {
	requestID := utils.GetRequestID(ctx)

	var message *models.ChatMessage
	var saved *models.SurveySubmission
	err := utils.RetryOnConflict(ctx, uc.InternalConfig.Workflow.OptimisticRetryAttempts, func(attempt int) error {
		submission, err := uc.findSubmission(ctx, submissionID)
		if err != nil {
			return err
		}

		message, err = uc.CaseWorkflow.SendMessage(submission, request.Text, request.Actor)
		if err != nil {
			return err
		}

		if err := uc.SubmissionRepository.Update(ctx, submission); err != nil {
			uc.logSaveError(ctx, "workflowUsecase.SendMessage error calling SubmissionRepository.Update", constvars.ResourceSubmission, submissionID, attempt, err)
			return err
		}
		saved = submission
		return nil
	})
	if err != nil {
		uc.logRejected(requestID, submissionID, actionMessage, err)
		return nil, err
	}

	event := newEvent(constvars.WorkflowEventMessageSent, saved, request.Actor)
	event.Attributes = map[string]string{"message_id": message.ID}
	uc.publish(ctx, event)

	response := utils.ConvertChatMessageToResponse(*message)
	return &response, nil
}

// transact loads the submission and its account, applies fn and saves
// both in one transaction. fn reports whether the account changed. A
// version conflict on either document reruns the whole unit.
func (uc *workflowUsecase) transact(
	ctx context.Context,
	submissionID, action string,
	fn func(submission *models.SurveySubmission, account *models.PatientAccount) (bool, error),
) (*models.SurveySubmission, error) {
	requestID := utils.GetRequestID(ctx)

	var saved *models.SurveySubmission
	err := utils.RetryOnConflict(ctx, uc.InternalConfig.Workflow.OptimisticRetryAttempts, func(attempt int) error {
		return uc.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
			submission, err := uc.findSubmission(txCtx, submissionID)
			if err != nil {
				return err
			}
			account, err := uc.AccountRepository.FindByID(txCtx, submission.AccountID)
			if err != nil {
				uc.Log.Error("workflowUsecase.transact error calling AccountRepository.FindByID",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAccountIDKey, submission.AccountID),
					zap.Error(err),
				)
				return err
			}
			if account == nil {
				return exceptions.ErrAccountNotFound(submission.AccountID)
			}

			accountChanged, err := fn(submission, account)
			if err != nil {
				return err
			}

			if err := uc.SubmissionRepository.Update(txCtx, submission); err != nil {
				uc.logSaveError(ctx, "workflowUsecase.transact error calling SubmissionRepository.Update", constvars.ResourceSubmission, submissionID, attempt, err)
				return asSyncFailure(err, accountChanged)
			}
			if accountChanged {
				if err := uc.AccountRepository.Update(txCtx, account); err != nil {
					uc.logSaveError(ctx, "workflowUsecase.transact error calling AccountRepository.Update", constvars.ResourceAccount, submissionID, attempt, err)
					return asSyncFailure(err, true)
				}
			}

			saved = submission
			return nil
		})
	})
	if err != nil {
		uc.logRejected(requestID, submissionID, action, err)
		return nil, err
	}
	return saved, nil
}

func (uc *workflowUsecase) findSubmission(ctx context.Context, submissionID string) (*models.SurveySubmission, error) {
	submission, err := uc.SubmissionRepository.FindByID(ctx, submissionID)
	if err != nil {
		uc.Log.Error("workflowUsecase.findSubmission error calling SubmissionRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSubmissionIDKey, submissionID),
			zap.Error(err),
		)
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(submissionID)
	}
	return submission, nil
}

// transitionEvents records the transition metric and returns the status
// event, if the status moved.
func (uc *workflowUsecase) transitionEvents(submission *models.SurveySubmission, outcome *Outcome, actor models.Actor, reason string) []*requests.WorkflowEvent {
	if !outcome.StatusChanged() {
		return nil
	}
	metrics.RecordWorkflowTransition(string(outcome.From), string(outcome.To))

	var eventType string
	switch outcome.To {
	case models.SubmissionStatusReviewed:
		eventType = constvars.WorkflowEventCaseReviewed
	case models.SubmissionStatusArchived:
		eventType = constvars.WorkflowEventCaseArchived
	case models.SubmissionStatusClosed:
		eventType = constvars.WorkflowEventCaseClosed
	default:
		return nil
	}

	event := newEvent(eventType, submission, actor)
	event.Attributes = map[string]string{"from": string(outcome.From), "to": string(outcome.To)}
	if reason != "" {
		event.Attributes["reason"] = reason
	}
	return []*requests.WorkflowEvent{event}
}

// publish runs after commit. A broker failure is logged and the request
// still succeeds.
func (uc *workflowUsecase) publish(ctx context.Context, events ...*requests.WorkflowEvent) {
	for _, event := range events {
		if err := uc.WorkflowPublisher.Publish(ctx, event); err != nil {
			uc.Log.Error("workflowUsecase.publish error calling WorkflowPublisher.Publish",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingEventTypeKey, event.Type),
				zap.String(constvars.LoggingSubmissionIDKey, event.SubmissionID),
				zap.Error(err),
			)
		}
	}
}

func (uc *workflowUsecase) logSaveError(ctx context.Context, message, resource, submissionID string, attempt int, err error) {
	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
		zap.Int(constvars.LoggingAttemptKey, attempt),
	}
	if exceptions.IsKind(err, exceptions.KindConflict) {
		metrics.RecordOptimisticConflict(resource)
		uc.Log.Warn(message+", version conflict", fields...)
		return
	}
	uc.Log.Error(message, append(fields, zap.Error(err))...)
}

func (uc *workflowUsecase) logRejected(requestID, submissionID, action string, err error) {
	uc.Log.Info("workflowUsecase rejected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
		zap.String(constvars.LoggingOperationKey, action),
		zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
	)
}

// asSyncFailure marks a failed two-document save. Conflicts stay conflicts
// so they are retried.
func asSyncFailure(err error, twoDocuments bool) error {
	if !twoDocuments || exceptions.IsKind(err, exceptions.KindConflict) {
		return err
	}
	return exceptions.ErrSyncFailure(err)
}

func newEvent(eventType string, submission *models.SurveySubmission, actor models.Actor) *requests.WorkflowEvent {
	return &requests.WorkflowEvent{
		Type:         eventType,
		SubmissionID: submission.ID,
		AccountID:    submission.AccountID,
		DoctorID:     submission.AssignedDoctor,
		ActorID:      actor.ID,
	}
}
