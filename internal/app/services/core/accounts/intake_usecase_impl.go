package accounts

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/answers"
	"intake-service/internal/app/services/core/assignments"
	"intake-service/internal/app/services/shared/ratelimiter"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const limiterGroupIntakeSubmit = "intake-submit"

var (
	intakeUsecaseInstance contracts.IntakeUsecase
	onceIntakeUsecase     sync.Once
)

type intakeUsecase struct {
	AccountRepository    contracts.AccountRepository
	SubmissionRepository contracts.SubmissionRepository
	Transactor           contracts.Transactor
	LockerService        contracts.LockerService
	WorkflowPublisher    contracts.WorkflowPublisher
	ResourceLimiter      *ratelimiter.ResourceLimiter
	Ledger               *answers.Ledger
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	lockRetryDelay       time.Duration
}

func NewIntakeUsecase(
	accountRepository contracts.AccountRepository,
	submissionRepository contracts.SubmissionRepository,
	transactor contracts.Transactor,
	lockerService contracts.LockerService,
	workflowPublisher contracts.WorkflowPublisher,
	resourceLimiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.IntakeUsecase {
	onceIntakeUsecase.Do(func() {
		intakeUsecaseInstance = newIntakeUsecase(
			accountRepository,
			submissionRepository,
			transactor,
			lockerService,
			workflowPublisher,
			resourceLimiter,
			answers.NewLedger(),
			internalConfig,
			logger,
		)
	})
	return intakeUsecaseInstance
}

func newIntakeUsecase(
	accountRepository contracts.AccountRepository,
	submissionRepository contracts.SubmissionRepository,
	transactor contracts.Transactor,
	lockerService contracts.LockerService,
	workflowPublisher contracts.WorkflowPublisher,
	resourceLimiter *ratelimiter.ResourceLimiter,
	ledger *answers.Ledger,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *intakeUsecase {
	return &intakeUsecase{
		AccountRepository:    accountRepository,
		SubmissionRepository: submissionRepository,
		Transactor:           transactor,
		LockerService:        lockerService,
		WorkflowPublisher:    workflowPublisher,
		ResourceLimiter:      resourceLimiter,
		Ledger:               ledger,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

// Submit registers a pending account together with its first intake
// submission. The answers are stamped with the patient as their author.
func (uc *intakeUsecase) Submit(ctx context.Context, request *requests.SubmitIntake) (*responses.IntakeResult, error) {
	requestID := utils.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(request.Email))

	limit, err := uc.ResourceLimiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:     email,
		LimiterGroupName: limiterGroupIntakeSubmit,
		Window:           uc.InternalConfig.Intake.SubmissionWindow,
		MaxQuota:         uc.InternalConfig.Intake.SubmissionQuota,
	})
	if err != nil {
		uc.Log.Error("intakeUsecase.Submit error calling ResourceLimiter.ApplyResourceLimiter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !limit.Allowed {
		uc.Log.Info("intakeUsecase.Submit rate limited",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, limit.RetryAfter),
		)
		return nil, exceptions.ErrTooManyRequests(nil)
	}

	now := time.Now()
	account := &models.PatientAccount{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(request.Name),
		Email:         email,
		Phone:         strings.TrimSpace(request.Phone),
		AccountStatus: models.AccountStatusPending,
	}
	account.SetCreatedAtUpdatedAt(now)

	patient := models.Actor{ID: account.ID, Name: account.Name, Role: constvars.ActorRolePatient}
	items, err := uc.buildAnswers(request.Answers, patient)
	if err != nil {
		return nil, err
	}

	submission := &models.SurveySubmission{
		AccountID: account.ID,
		Kind:      models.SubmissionKindIntake,
		Status:    models.SubmissionStatusNew,
		Answers:   items,
	}
	submission.SetCreatedAtUpdatedAt(now)

	err = uc.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.AccountRepository.Create(txCtx, account); err != nil {
			uc.Log.Error("intakeUsecase.Submit error calling AccountRepository.Create",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}
		if err := uc.SubmissionRepository.Create(txCtx, submission); err != nil {
			uc.Log.Error("intakeUsecase.Submit error calling SubmissionRepository.Create",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "intake_submitted", requestID,
		zap.String(constvars.LoggingAccountIDKey, account.ID),
		zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
	)
	uc.publish(ctx, &requests.WorkflowEvent{
		Type:         constvars.WorkflowEventIntakeSubmitted,
		SubmissionID: submission.ID,
		AccountID:    account.ID,
		ActorID:      patient.ID,
	})

	return &responses.IntakeResult{
		Account:    *utils.ConvertAccountToResponse(account),
		Submission: *utils.ConvertSubmissionToResponse(submission),
	}, nil
}

// CreateServiceRequest opens a further case for an existing account. The
// new submission starts with the account's doctor. It holds the account's
// assignment lock so a concurrent reassignment cannot fan out between the
// account read and the insert.
func (uc *intakeUsecase) CreateServiceRequest(ctx context.Context, accountID string, request *requests.CreateServiceRequest) (*responses.Submission, error) {
	requestID := utils.GetRequestID(ctx)

	items, err := uc.buildAnswers(request.Answers, request.Actor)
	if err != nil {
		return nil, err
	}

	lock, err := assignments.LockAccount(ctx, uc.LockerService, accountID, uc.InternalConfig.Workflow.AssignmentLockTTL, uc.lockRetryDelay)
	if err != nil {
		uc.Log.Info("intakeUsecase.CreateServiceRequest account lock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
		return nil, err
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			uc.Log.Warn("intakeUsecase.CreateServiceRequest error releasing account lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lock.Key()),
				zap.Error(err),
			)
		}
	}()

	var account *models.PatientAccount
	submission := &models.SurveySubmission{
		AccountID: accountID,
		Kind:      models.SubmissionKindServiceRequest,
		Status:    models.SubmissionStatusNew,
		Answers:   items,
	}
	err = uc.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.AccountRepository.FindByID(txCtx, accountID)
		if err != nil {
			uc.Log.Error("intakeUsecase.CreateServiceRequest error calling AccountRepository.FindByID",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAccountIDKey, accountID),
				zap.Error(err),
			)
			return err
		}
		if found == nil {
			return exceptions.ErrAccountNotFound(accountID)
		}
		account = found

		submission.AssignedDoctor = account.AssignedDoctorID
		submission.SetCreatedAtUpdatedAt(time.Now())
		if err := uc.SubmissionRepository.Create(txCtx, submission); err != nil {
			uc.Log.Error("intakeUsecase.CreateServiceRequest error calling SubmissionRepository.Create",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAccountIDKey, accountID),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "service_request_created", requestID,
		zap.String(constvars.LoggingAccountIDKey, account.ID),
		zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
	)
	uc.publish(ctx, &requests.WorkflowEvent{
		Type:         constvars.WorkflowEventServiceRequested,
		SubmissionID: submission.ID,
		AccountID:    account.ID,
		DoctorID:     submission.AssignedDoctor,
		ActorID:      request.Actor.ID,
	})

	return utils.ConvertSubmissionToResponse(submission), nil
}

// buildAnswers prepends from the last answer so the list keeps the order
// the questions were answered in.
func (uc *intakeUsecase) buildAnswers(input []requests.IntakeAnswer, actor models.Actor) ([]models.AnswerItem, error) {
	items := []models.AnswerItem{}
	for i := len(input) - 1; i >= 0; i-- {
		var err error
		items, err = uc.Ledger.Append(items, models.AnswerItem{
			CategoryID:   input[i].CategoryID,
			QuestionID:   input[i].QuestionID,
			QuestionText: input[i].QuestionText,
			Answer:       input[i].Answer.ToModel(),
		}, actor)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (uc *intakeUsecase) publish(ctx context.Context, event *requests.WorkflowEvent) {
	if err := uc.WorkflowPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("intakeUsecase.publish error calling WorkflowPublisher.Publish",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}
}
