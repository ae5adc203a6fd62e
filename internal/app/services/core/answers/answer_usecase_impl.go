package answers

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	operationAppend       = "append"
	operationEdit         = "edit"
	operationDiscontinue  = "discontinue"
	operationPrescription = "attach_prescription"
	operationRemove       = "remove"
)

var (
	answerUsecaseInstance contracts.AnswerUsecase
	onceAnswerUsecase     sync.Once
)

type answerUsecase struct {
	SubmissionRepository contracts.SubmissionRepository
	CategoryCatalog      contracts.CategoryCatalog
	Ledger               *Ledger
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewAnswerUsecase(
	submissionRepository contracts.SubmissionRepository,
	categoryCatalog contracts.CategoryCatalog,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AnswerUsecase {
	onceAnswerUsecase.Do(func() {
		answerUsecaseInstance = newAnswerUsecase(submissionRepository, categoryCatalog, NewLedger(), internalConfig, logger)
	})
	return answerUsecaseInstance
}

func newAnswerUsecase(
	submissionRepository contracts.SubmissionRepository,
	categoryCatalog contracts.CategoryCatalog,
	ledger *Ledger,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *answerUsecase {
	return &answerUsecase{
		SubmissionRepository: submissionRepository,
		CategoryCatalog:      categoryCatalog,
		Ledger:               ledger,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *answerUsecase) GroupedAnswers(ctx context.Context, submissionID string) (*responses.GroupedAnswers, error) {
	requestID := utils.GetRequestID(ctx)

	submission, err := uc.SubmissionRepository.FindByID(ctx, submissionID)
	if err != nil {
		uc.Log.Error("answerUsecase.GroupedAnswers error calling SubmissionRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submissionID),
			zap.Error(err),
		)
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(submissionID)
	}

	lookup, err := uc.CategoryCatalog.Lookup(ctx)
	if err != nil {
		uc.Log.Error("answerUsecase.GroupedAnswers error calling CategoryCatalog.Lookup",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.GroupedAnswers{SubmissionID: submission.ID, Groups: []responses.AnswerGroup{}}
	for _, group := range OrderedGroups(submission.Answers, lookup) {
		answerGroup := responses.AnswerGroup{
			CategoryID:   group.Key,
			CategoryName: group.Key,
			Items:        utils.ConvertAnswerItemsToResponse(group.Items),
		}
		if group.Category != nil {
			answerGroup.CategoryName = group.Category.Name
			answerGroup.Order = group.Category.Order
		}
		result.Groups = append(result.Groups, answerGroup)
	}
	return result, nil
}

func (uc *answerUsecase) AppendAnswer(ctx context.Context, submissionID string, request *requests.AppendAnswer) (*responses.AnswerItem, error) {
	item := models.AnswerItem{
		ID:           request.ID,
		CategoryID:   request.CategoryID,
		QuestionID:   request.QuestionID,
		QuestionText: request.QuestionText,
		Answer:       request.Answer.ToModel(),
	}

	var appendedID string
	submission, err := uc.mutate(ctx, submissionID, operationAppend, func(list []models.AnswerItem) ([]models.AnswerItem, error) {
		updated, err := uc.Ledger.Append(list, item, request.Actor)
		if err != nil {
			return nil, err
		}
		appendedID = updated[0].ID
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(submission, appendedID)
}

func (uc *answerUsecase) EditAnswer(ctx context.Context, submissionID, answerID string, request *requests.EditAnswer) (*responses.AnswerItem, error) {
	submission, err := uc.mutate(ctx, submissionID, operationEdit, func(list []models.AnswerItem) ([]models.AnswerItem, error) {
		return uc.Ledger.Edit(list, answerID, request.QuestionText, request.Answer.ToModel(), request.Actor)
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(submission, answerID)
}

func (uc *answerUsecase) DiscontinueAnswer(ctx context.Context, submissionID, answerID string, request *requests.DiscontinueAnswer) (*responses.AnswerItem, error) {
	submission, err := uc.mutate(ctx, submissionID, operationDiscontinue, func(list []models.AnswerItem) ([]models.AnswerItem, error) {
		return uc.Ledger.Discontinue(list, answerID, request.Reason, request.Actor)
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(submission, answerID)
}

func (uc *answerUsecase) AttachPrescription(ctx context.Context, submissionID, answerID string, request *requests.AttachPrescription) (*responses.AnswerItem, error) {
	submission, err := uc.mutate(ctx, submissionID, operationPrescription, func(list []models.AnswerItem) ([]models.AnswerItem, error) {
		return uc.Ledger.AttachPrescription(list, answerID, request.ToModel(), request.Actor)
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(submission, answerID)
}

func (uc *answerUsecase) RemoveAnswer(ctx context.Context, submissionID, answerID string) error {
	_, err := uc.mutate(ctx, submissionID, operationRemove, func(list []models.AnswerItem) ([]models.AnswerItem, error) {
		return uc.Ledger.Remove(list, answerID)
	})
	return err
}

// mutate loads the submission, applies fn to its answers and saves it,
// starting over from a fresh load when another writer got there first.
func (uc *answerUsecase) mutate(ctx context.Context, submissionID, operation string, fn func(list []models.AnswerItem) ([]models.AnswerItem, error)) (*models.SurveySubmission, error) {
	requestID := utils.GetRequestID(ctx)

	var saved *models.SurveySubmission
	err := utils.RetryOnConflict(ctx, uc.InternalConfig.Workflow.OptimisticRetryAttempts, func(attempt int) error {
		submission, err := uc.SubmissionRepository.FindByID(ctx, submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return exceptions.ErrSubmissionNotFound(submissionID)
		}

		updated, err := fn(submission.Answers)
		if err != nil {
			return err
		}
		submission.Answers = updated
		submission.SetUpdatedAt(time.Now())

		if err := uc.SubmissionRepository.Update(ctx, submission); err != nil {
			if exceptions.IsKind(err, exceptions.KindConflict) {
				metrics.RecordOptimisticConflict(constvars.ResourceSubmission)
				uc.Log.Warn("answerUsecase.mutate version conflict, reloading",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingSubmissionIDKey, submissionID),
					zap.Int(constvars.LoggingAttemptKey, attempt),
				)
			}
			return err
		}
		saved = submission
		return nil
	})
	metrics.RecordLedgerMutation(constvars.LedgerAnswers, operation, err)
	if err != nil {
		uc.Log.Info("answerUsecase.mutate rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submissionID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "answer_ledger_"+operation, requestID,
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)
	return saved, nil
}

func (uc *answerUsecase) itemResponse(submission *models.SurveySubmission, answerID string) (*responses.AnswerItem, error) {
	idx := models.FindAnswerItem(submission.Answers, answerID)
	if idx < 0 {
		return nil, exceptions.ErrAnswerItemNotFound(answerID)
	}
	item := utils.ConvertAnswerItemToResponse(submission.Answers[idx])
	return &item, nil
}
