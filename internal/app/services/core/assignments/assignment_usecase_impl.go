package assignments

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	assignmentUsecaseInstance contracts.AssignmentUsecase
	onceAssignmentUsecase     sync.Once
)

type assignmentUsecase struct {
	AccountRepository    contracts.AccountRepository
	SubmissionRepository contracts.SubmissionRepository
	Transactor           contracts.Transactor
	LockerService        contracts.LockerService
	WorkflowPublisher    contracts.WorkflowPublisher
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	retryDelay           time.Duration
}

func NewAssignmentUsecase(
	accountRepository contracts.AccountRepository,
	submissionRepository contracts.SubmissionRepository,
	transactor contracts.Transactor,
	lockerService contracts.LockerService,
	workflowPublisher contracts.WorkflowPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AssignmentUsecase {
	onceAssignmentUsecase.Do(func() {
		assignmentUsecaseInstance = newAssignmentUsecase(accountRepository, submissionRepository, transactor, lockerService, workflowPublisher, internalConfig, logger)
	})
	return assignmentUsecaseInstance
}

func newAssignmentUsecase(
	accountRepository contracts.AccountRepository,
	submissionRepository contracts.SubmissionRepository,
	transactor contracts.Transactor,
	lockerService contracts.LockerService,
	workflowPublisher contracts.WorkflowPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *assignmentUsecase {
	return &assignmentUsecase{
		AccountRepository:    accountRepository,
		SubmissionRepository: submissionRepository,
		Transactor:           transactor,
		LockerService:        lockerService,
		WorkflowPublisher:    workflowPublisher,
		InternalConfig:       internalConfig,
		Log:                  logger,
		retryDelay:           lockRetryDelay,
	}
}

// ReassignAccount moves the account and every one of its submissions to
// doctorID in one transaction. Concurrent reassignments of the same
// account are serialised by a redis lock.
func (uc *assignmentUsecase) ReassignAccount(ctx context.Context, accountID string, request *requests.ReassignDoctor) (*responses.Reassignment, error) {
	requestID := utils.GetRequestID(ctx)

	doctorID := strings.TrimSpace(request.DoctorID)
	if doctorID == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientDoctorIDRequired)
	}

	lock, err := LockAccount(ctx, uc.LockerService, accountID, uc.InternalConfig.Workflow.AssignmentLockTTL, uc.retryDelay)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			uc.Log.Warn("assignmentUsecase.ReassignAccount error releasing account lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lock.Key()),
				zap.Error(err),
			)
		}
	}()

	var updated int64
	err = utils.RetryOnConflict(ctx, uc.InternalConfig.Workflow.OptimisticRetryAttempts, func(attempt int) error {
		return uc.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
			account, err := uc.AccountRepository.FindByID(txCtx, accountID)
			if err != nil {
				uc.Log.Error("assignmentUsecase.ReassignAccount error calling AccountRepository.FindByID",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAccountIDKey, accountID),
					zap.Error(err),
				)
				return err
			}
			if account == nil {
				return exceptions.ErrAccountNotFound(accountID)
			}

			account.AssignedDoctorID = doctorID
			account.SetUpdatedAt(time.Now())
			if err := uc.AccountRepository.Update(txCtx, account); err != nil {
				if exceptions.IsKind(err, exceptions.KindConflict) {
					metrics.RecordOptimisticConflict(constvars.ResourceAccount)
					uc.Log.Warn("assignmentUsecase.ReassignAccount version conflict, reloading",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingAccountIDKey, accountID),
						zap.Int(constvars.LoggingAttemptKey, attempt),
					)
					return err
				}
				return exceptions.ErrSyncFailure(err)
			}

			count, err := uc.SubmissionRepository.SetAssignedDoctorByAccountID(txCtx, accountID, doctorID)
			if err != nil {
				uc.Log.Error("assignmentUsecase.ReassignAccount error calling SubmissionRepository.SetAssignedDoctorByAccountID",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAccountIDKey, accountID),
					zap.Error(err),
				)
				return exceptions.ErrSyncFailure(err)
			}
			updated = count
			return nil
		})
	})
	if err != nil {
		uc.Log.Info("assignmentUsecase.ReassignAccount rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
		)
		return nil, err
	}

	metrics.RecordAssignmentFanout(updated)
	utils.LogBusinessEvent(uc.Log, "account_reassigned", requestID,
		zap.String(constvars.LoggingAccountIDKey, accountID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int64(constvars.LoggingSubmissionCountKey, updated),
	)

	event := &requests.WorkflowEvent{
		Type:      constvars.WorkflowEventDoctorAssigned,
		AccountID: accountID,
		DoctorID:  doctorID,
		ActorID:   request.Actor.ID,
	}
	if err := uc.WorkflowPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("assignmentUsecase.ReassignAccount error calling WorkflowPublisher.Publish",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}

	return &responses.Reassignment{
		AccountID:          accountID,
		DoctorID:           doctorID,
		SubmissionsUpdated: updated,
	}, nil
}
