package workflow

import (
	"context"
	"errors"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts/mocks"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workflowMocks struct {
	submissions *mocks.MockSubmissionRepository
	accounts    *mocks.MockAccountRepository
	catalog     *mocks.MockCategoryCatalog
	transactor  *mocks.MockTransactor
	publisher   *mocks.MockWorkflowPublisher
}

func newTestWorkflowUsecase() (*workflowUsecase, *workflowMocks) {
	m := &workflowMocks{
		submissions: new(mocks.MockSubmissionRepository),
		accounts:    new(mocks.MockAccountRepository),
		catalog:     new(mocks.MockCategoryCatalog),
		transactor:  new(mocks.MockTransactor),
		publisher:   new(mocks.MockWorkflowPublisher),
	}
	cfg := &config.InternalConfig{Workflow: config.AppWorkflow{OptimisticRetryAttempts: 3}}
	uc := newWorkflowUsecase(m.submissions, m.accounts, m.catalog, m.transactor, m.publisher, newTestWorkflow(), cfg, zap.NewNop())
	return uc, m
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(event *requests.WorkflowEvent) bool {
		return event.Type == eventType
	})
}

func TestWorkflowUsecaseApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves Both Records And Publishes", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusNew)
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.accounts.On("Update", ctx, mock.MatchedBy(func(a *models.PatientAccount) bool {
			return a.AccountStatus == models.AccountStatusActive && a.AssignedDoctorID == "doctor-D"
		})).Return(nil).Once()
		m.publisher.On("Publish", ctx, eventOfType(constvars.WorkflowEventCaseReviewed)).Return(nil).Once()
		m.publisher.On("Publish", ctx, eventOfType(constvars.WorkflowEventAccountActivated)).Return(nil).Once()
		m.publisher.On("Publish", ctx, eventOfType(constvars.WorkflowEventDoctorAssigned)).Return(nil).Once()

		result, err := uc.Approve(ctx, "sub-1", &requests.ApproveSubmission{AssignedDoctor: strPtr("doctor-D"), Actor: doctor})

		require.NoError(t, err)
		assert.Equal(t, string(models.SubmissionStatusReviewed), result.Status)
		assert.Equal(t, "doctor-D", result.AssignedDoctor)
		m.submissions.AssertExpectations(t)
		m.accounts.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Account Conflict Reruns The Transaction", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		first, firstAccount := newCase(models.SubmissionStatusNew)
		second, secondAccount := newCase(models.SubmissionStatusNew)
		m.transactor.On("WithTransaction", ctx).Return(nil).Twice()
		m.submissions.On("FindByID", ctx, "sub-1").Return(first, nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(second, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(firstAccount, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(secondAccount, nil).Once()
		m.submissions.On("Update", ctx, mock.Anything).Return(nil).Twice()
		m.accounts.On("Update", ctx, mock.Anything).Return(exceptions.ErrVersionConflict(constvars.ResourceAccount, "acc-1")).Once()
		m.accounts.On("Update", ctx, mock.Anything).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := uc.Approve(ctx, "sub-1", &requests.ApproveSubmission{Actor: doctor})

		require.NoError(t, err)
		m.accounts.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("Storage Failure Is A Sync Failure", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusNew)
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.accounts.On("Update", ctx, account).Return(exceptions.ErrMongoDBUpdateDocument(errors.New("socket closed"))).Once()

		_, err := uc.Approve(ctx, "sub-1", &requests.ApproveSubmission{AssignedDoctor: strPtr("doctor-D"), Actor: doctor})

		assert.True(t, exceptions.IsKind(err, exceptions.KindSyncFailure))
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Illegal Transition Saves Nothing", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusArchived)
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()

		_, err := uc.Approve(ctx, "sub-1", &requests.ApproveSubmission{Actor: doctor})

		assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
		m.submissions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Publish Failure Does Not Fail The Request", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusNew)
		account.AccountStatus = models.AccountStatusActive
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.accounts.On("Update", ctx, account).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(exceptions.ErrRabbitMQPublishMessage(errors.New("closed"), "q")).Once()

		result, err := uc.Approve(ctx, "sub-1", &requests.ApproveSubmission{Actor: doctor})

		require.NoError(t, err)
		assert.Equal(t, string(models.SubmissionStatusReviewed), result.Status)
	})
}

func TestWorkflowUsecaseReject(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Pending Account", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusNew)
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.accounts.On("Update", ctx, mock.MatchedBy(func(a *models.PatientAccount) bool {
			return a.AccountStatus == models.AccountStatusRejected
		})).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.MatchedBy(func(event *requests.WorkflowEvent) bool {
			return event.Type == constvars.WorkflowEventCaseArchived && event.Attributes["reason"] == "duplicate"
		})).Return(nil).Once()

		result, err := uc.Reject(ctx, "sub-1", &requests.RejectSubmission{Reason: "duplicate", Actor: doctor})

		require.NoError(t, err)
		assert.Equal(t, string(models.SubmissionStatusArchived), result.Status)
		m.accounts.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Active Account Is Left Alone", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusReviewed)
		account.AccountStatus = models.AccountStatusActive
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		_, err := uc.Reject(ctx, "sub-1", &requests.RejectSubmission{Actor: doctor})

		require.NoError(t, err)
		m.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing Submission", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "nope").Return(nil, nil).Once()

		_, err := uc.Reject(ctx, "nope", &requests.RejectSubmission{Actor: doctor})

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestWorkflowUsecaseFinishTask(t *testing.T) {
	ctx := context.Background()

	t.Run("Closes The Case", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusReviewed)
		m.catalog.On("FindByName", ctx, constvars.CategoryNameCurrentMedication).Return(medCategory, nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.accounts.On("Update", ctx, account).Return(nil).Once()
		m.publisher.On("Publish", ctx, eventOfType(constvars.WorkflowEventCaseClosed)).Return(nil).Once()

		result, err := uc.FinishTask(ctx, "sub-1", &requests.FinishTask{
			ClinicalMedication: "Semaglutide",
			ClinicalTreatment:  "Starter dose",
			RefillReminder:     strPtr("1 month"),
			Actor:              doctor,
		})

		require.NoError(t, err)
		assert.Equal(t, string(models.SubmissionStatusClosed), result.Status)
		require.Len(t, result.Answers, 2)
		assert.True(t, result.Answers[0].IsLocked)
		require.NotNil(t, account.RefillReminderDate)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Missing Category", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, account := newCase(models.SubmissionStatusReviewed)
		m.catalog.On("FindByName", ctx, constvars.CategoryNameCurrentMedication).Return(nil, nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()

		_, err := uc.FinishTask(ctx, "sub-1", &requests.FinishTask{ClinicalMedication: "Semaglutide", Actor: doctor})

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
		assert.Equal(t, models.SubmissionStatusReviewed, submission.Status)
		m.submissions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestWorkflowUsecaseSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends And Publishes", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, _ := newCase(models.SubmissionStatusReviewed)
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()
		m.submissions.On("Update", ctx, submission).Return(nil).Once()
		m.publisher.On("Publish", ctx, eventOfType(constvars.WorkflowEventMessageSent)).Return(nil).Once()

		message, err := uc.SendMessage(ctx, "sub-1", &requests.SendMessage{Text: "How are you feeling?", Actor: doctor})

		require.NoError(t, err)
		assert.Equal(t, "How are you feeling?", message.Text)
		assert.Equal(t, doctor.ID, message.SenderID)
		assert.Equal(t, 1, submission.Messages.Len())
		m.transactor.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("Closed Case", func(t *testing.T) {
		uc, m := newTestWorkflowUsecase()
		submission, _ := newCase(models.SubmissionStatusClosed)
		m.submissions.On("FindByID", ctx, "sub-1").Return(submission, nil).Once()

		_, err := uc.SendMessage(ctx, "sub-1", &requests.SendMessage{Text: "hello", Actor: doctor})

		assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
		m.submissions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
