package accounts

import (
	"context"
	"errors"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts/mocks"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/answers"
	"intake-service/internal/app/services/shared/ratelimiter"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type intakeMocks struct {
	accounts    *mocks.MockAccountRepository
	submissions *mocks.MockSubmissionRepository
	transactor  *mocks.MockTransactor
	locker      *mocks.MockLockerService
	publisher   *mocks.MockWorkflowPublisher
	redis       *mocks.MockRedisRepository
}

func newTestIntakeUsecase() (*intakeUsecase, *intakeMocks) {
	m := &intakeMocks{
		accounts:    new(mocks.MockAccountRepository),
		submissions: new(mocks.MockSubmissionRepository),
		transactor:  new(mocks.MockTransactor),
		locker:      new(mocks.MockLockerService),
		publisher:   new(mocks.MockWorkflowPublisher),
		redis:       new(mocks.MockRedisRepository),
	}
	cfg := &config.InternalConfig{
		Intake:   config.AppIntake{SubmissionQuota: 2, SubmissionWindow: time.Hour},
		Workflow: config.AppWorkflow{AssignmentLockTTL: 30 * time.Second},
	}
	limiter := ratelimiter.NewResourceLimiter(m.redis, zap.NewNop())
	uc := newIntakeUsecase(m.accounts, m.submissions, m.transactor, m.locker, m.publisher, limiter, answers.NewLedger(), cfg, zap.NewNop())
	uc.lockRetryDelay = time.Millisecond
	return uc, m
}

func assignSubmissionID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*models.SurveySubmission).ID = id
	}
}

func TestIntakeSubmit(t *testing.T) {
	ctx := context.Background()
	request := &requests.SubmitIntake{
		Name:  "Jane Roe",
		Email: " Jane@Example.com ",
		Answers: []requests.IntakeAnswer{
			{QuestionText: "Main concern", Answer: requests.AnswerValue{Text: "Weight"}},
			{QuestionText: "Allergies", Answer: requests.AnswerValue{Options: []string{"Peanuts"}, IsList: true}},
		},
	}

	t.Run("Creates Pending Account And Intake", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.redis.On("IncrementWithTTL", ctx, mock.Anything, time.Hour+time.Second).Return(1, nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("Create", ctx, mock.MatchedBy(func(a *models.PatientAccount) bool {
			return a.ID != "" && a.Email == "jane@example.com" && a.AccountStatus == models.AccountStatusPending
		})).Return(nil).Once()
		m.submissions.On("Create", ctx, mock.Anything).Run(assignSubmissionID("sub-1")).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.MatchedBy(func(event *requests.WorkflowEvent) bool {
			return event.Type == constvars.WorkflowEventIntakeSubmitted && event.SubmissionID == "sub-1"
		})).Return(nil).Once()

		result, err := uc.Submit(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, string(models.AccountStatusPending), result.Account.AccountStatus)
		assert.Equal(t, "sub-1", result.Submission.ID)
		assert.Equal(t, result.Account.ID, result.Submission.AccountID)
		assert.Equal(t, string(models.SubmissionKindIntake), result.Submission.Kind)
		require.Len(t, result.Submission.Answers, 2)
		assert.Equal(t, "Main concern", result.Submission.Answers[0].QuestionText)
		assert.Equal(t, "Allergies", result.Submission.Answers[1].QuestionText)
		assert.Equal(t, constvars.ActorRolePatient, result.Submission.Answers[0].AddedBy.Role)
		assert.Equal(t, result.Account.ID, result.Submission.Answers[0].AddedBy.ID)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Quota Exhausted", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.redis.On("IncrementWithTTL", ctx, mock.Anything, time.Hour+time.Second).Return(3, nil).Once()

		_, err := uc.Submit(ctx, request)

		assert.True(t, exceptions.IsKind(err, exceptions.KindTooManyRequests))
		m.transactor.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("Failed Submission Rolls Back", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.redis.On("IncrementWithTTL", ctx, mock.Anything, time.Hour+time.Second).Return(1, nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.submissions.On("Create", ctx, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(errors.New("down"))).Once()

		_, err := uc.Submit(ctx, request)

		assert.True(t, exceptions.IsKind(err, exceptions.KindInternal))
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Blank Question Is Rejected", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.redis.On("IncrementWithTTL", ctx, mock.Anything, time.Hour+time.Second).Return(1, nil).Once()

		_, err := uc.Submit(ctx, &requests.SubmitIntake{
			Name:    "Jane Roe",
			Email:   "jane@example.com",
			Answers: []requests.IntakeAnswer{{QuestionText: " "}},
		})

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
		m.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCreateServiceRequest(t *testing.T) {
	ctx := context.Background()
	nurse := models.Actor{ID: "nurse-1", Name: "Nora Nurse", Role: constvars.ActorRoleNurse}
	const lockKey = "assignment:account:acc-1"

	t.Run("Inherits The Account Doctor", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(&models.PatientAccount{ID: "acc-1", AssignedDoctorID: "doctor-D", AccountStatus: models.AccountStatusActive}, nil).Once()
		m.submissions.On("Create", ctx, mock.MatchedBy(func(s *models.SurveySubmission) bool {
			return s.AssignedDoctor == "doctor-D" && s.Kind == models.SubmissionKindServiceRequest
		})).Run(assignSubmissionID("sub-2")).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		result, err := uc.CreateServiceRequest(ctx, "acc-1", &requests.CreateServiceRequest{
			Answers: []requests.IntakeAnswer{{QuestionText: "Refill", Answer: requests.AnswerValue{Text: "yes"}}},
			Actor:   nurse,
		})

		require.NoError(t, err)
		assert.Equal(t, "sub-2", result.ID)
		assert.Equal(t, "doctor-D", result.AssignedDoctor)
		assert.Equal(t, string(models.SubmissionStatusNew), result.Status)
		m.submissions.AssertExpectations(t)
		m.locker.AssertExpectations(t)
	})

	t.Run("Account Is Read And Submission Created Under The Assignment Lock", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		var calls []string
		record := func(name string) func(mock.Arguments) {
			return func(mock.Arguments) { calls = append(calls, name) }
		}
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Run(record("lock")).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Run(record("unlock")).Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Run(record("transaction")).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Run(record("find account")).Return(&models.PatientAccount{ID: "acc-1", AssignedDoctorID: "doctor-D"}, nil).Once()
		m.submissions.On("Create", ctx, mock.Anything).Run(record("create submission")).Return(nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		_, err := uc.CreateServiceRequest(ctx, "acc-1", &requests.CreateServiceRequest{Actor: nurse})

		require.NoError(t, err)
		assert.Equal(t, []string{"lock", "transaction", "find account", "create submission", "unlock"}, calls)
	})

	t.Run("Running Reassignment Holds The Lock", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(false, "", nil)

		_, err := uc.CreateServiceRequest(ctx, "acc-1", &requests.CreateServiceRequest{Actor: nurse})

		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		m.accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		m.submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing Account", func(t *testing.T) {
		uc, m := newTestIntakeUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(nil, nil).Once()

		_, err := uc.CreateServiceRequest(ctx, "acc-1", &requests.CreateServiceRequest{Actor: nurse})

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
		m.submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.locker.AssertExpectations(t)
	})
}
