package submissions

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/services/core/assignments"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

var (
	submissionUsecaseInstance contracts.SubmissionUsecase
	onceSubmissionUsecase     sync.Once
)

type submissionUsecase struct {
	SubmissionRepository contracts.SubmissionRepository
	AccountRepository    contracts.AccountRepository
	Log                  *zap.Logger
}

func NewSubmissionUsecase(submissionRepository contracts.SubmissionRepository, accountRepository contracts.AccountRepository, logger *zap.Logger) contracts.SubmissionUsecase {
	onceSubmissionUsecase.Do(func() {
		submissionUsecaseInstance = newSubmissionUsecase(submissionRepository, accountRepository, logger)
	})
	return submissionUsecaseInstance
}

func newSubmissionUsecase(submissionRepository contracts.SubmissionRepository, accountRepository contracts.AccountRepository, logger *zap.Logger) *submissionUsecase {
	return &submissionUsecase{
		SubmissionRepository: submissionRepository,
		AccountRepository:    accountRepository,
		Log:                  logger,
	}
}

func (uc *submissionUsecase) FindByID(ctx context.Context, submissionID string) (*responses.Submission, error) {
	submission, err := uc.SubmissionRepository.FindByID(ctx, submissionID)
	if err != nil {
		uc.Log.Error("submissionUsecase.FindByID error calling SubmissionRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSubmissionIDKey, submissionID),
			zap.Error(err),
		)
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(submissionID)
	}
	return utils.ConvertSubmissionToResponse(submission), nil
}

// FindByAccountID lists every submission of the account and flags those
// whose doctor drifted from the account's.
func (uc *submissionUsecase) FindByAccountID(ctx context.Context, accountID string) (*responses.AccountSubmissions, error) {
	requestID := utils.GetRequestID(ctx)

	account, err := uc.AccountRepository.FindByID(ctx, accountID)
	if err != nil {
		uc.Log.Error("submissionUsecase.FindByAccountID error calling AccountRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
		return nil, err
	}
	if account == nil {
		return nil, exceptions.ErrAccountNotFound(accountID)
	}

	submissions, err := uc.SubmissionRepository.FindByAccountID(ctx, accountID)
	if err != nil {
		uc.Log.Error("submissionUsecase.FindByAccountID error calling SubmissionRepository.FindByAccountID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.AccountSubmissions{
		AccountID:        account.ID,
		AssignedDoctorID: account.AssignedDoctorID,
		Submissions:      make([]responses.Submission, 0, len(submissions)),
		OutOfSync:        []string{},
	}
	for i := range submissions {
		if !assignments.InSync(account, &submissions[i]) {
			result.OutOfSync = append(result.OutOfSync, submissions[i].ID)
		}
		result.Submissions = append(result.Submissions, *utils.ConvertSubmissionToResponse(&submissions[i]))
	}

	if len(result.OutOfSync) > 0 {
		uc.Log.Warn("submissionUsecase.FindByAccountID doctor assignment drift",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.String(constvars.LoggingDoctorIDKey, account.AssignedDoctorID),
			zap.Int(constvars.LoggingSubmissionCountKey, len(result.OutOfSync)),
		)
	}
	return result, nil
}
