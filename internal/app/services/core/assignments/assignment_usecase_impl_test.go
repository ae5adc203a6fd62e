package assignments

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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const lockKey = "assignment:account:acc-1"

type assignmentMocks struct {
	accounts    *mocks.MockAccountRepository
	submissions *mocks.MockSubmissionRepository
	transactor  *mocks.MockTransactor
	locker      *mocks.MockLockerService
	publisher   *mocks.MockWorkflowPublisher
}

func newTestAssignmentUsecase() (*assignmentUsecase, *assignmentMocks) {
	m := &assignmentMocks{
		accounts:    new(mocks.MockAccountRepository),
		submissions: new(mocks.MockSubmissionRepository),
		transactor:  new(mocks.MockTransactor),
		locker:      new(mocks.MockLockerService),
		publisher:   new(mocks.MockWorkflowPublisher),
	}
	cfg := &config.InternalConfig{Workflow: config.AppWorkflow{
		OptimisticRetryAttempts: 3,
		AssignmentLockTTL:       30 * time.Second,
	}}
	uc := newAssignmentUsecase(m.accounts, m.submissions, m.transactor, m.locker, m.publisher, cfg, zap.NewNop())
	uc.retryDelay = time.Millisecond
	return uc, m
}

func TestReassignAccount(t *testing.T) {
	ctx := context.Background()
	admin := models.Actor{ID: "admin-1", Name: "Ada Admin", Role: constvars.ActorRoleAdmin}

	t.Run("Fans Out To Every Submission", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(&models.PatientAccount{ID: "acc-1", AssignedDoctorID: "doctor-A"}, nil).Once()
		m.accounts.On("Update", ctx, mock.MatchedBy(func(a *models.PatientAccount) bool {
			return a.AssignedDoctorID == "doctor-B"
		})).Return(nil).Once()
		m.submissions.On("SetAssignedDoctorByAccountID", ctx, "acc-1", "doctor-B").Return(int64(3), nil).Once()
		m.publisher.On("Publish", ctx, mock.MatchedBy(func(event *requests.WorkflowEvent) bool {
			return event.Type == constvars.WorkflowEventDoctorAssigned && event.DoctorID == "doctor-B"
		})).Return(nil).Once()

		result, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "doctor-B", Actor: admin})

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.SubmissionsUpdated)
		assert.Equal(t, "doctor-B", result.DoctorID)
		m.locker.AssertExpectations(t)
		m.accounts.AssertExpectations(t)
		m.submissions.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Fan Out Failure Is A Sync Failure", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(&models.PatientAccount{ID: "acc-1"}, nil).Once()
		m.accounts.On("Update", ctx, mock.Anything).Return(nil).Once()
		m.submissions.On("SetAssignedDoctorByAccountID", ctx, "acc-1", "doctor-B").
			Return(int64(0), exceptions.ErrMongoDBUpdateDocument(errors.New("write failed"))).Once()

		_, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "doctor-B", Actor: admin})

		assert.True(t, exceptions.IsKind(err, exceptions.KindSyncFailure))
		m.locker.AssertCalled(t, "Unlock", mock.Anything, lockKey, "token")
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Account Conflict Is Retried", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Twice()
		m.accounts.On("FindByID", ctx, "acc-1").Return(&models.PatientAccount{ID: "acc-1"}, nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(&models.PatientAccount{ID: "acc-1", Version: 1}, nil).Once()
		m.accounts.On("Update", ctx, mock.Anything).Return(exceptions.ErrVersionConflict(constvars.ResourceAccount, "acc-1")).Once()
		m.accounts.On("Update", ctx, mock.Anything).Return(nil).Once()
		m.submissions.On("SetAssignedDoctorByAccountID", ctx, "acc-1", "doctor-B").Return(int64(1), nil).Once()
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		result, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "doctor-B", Actor: admin})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.SubmissionsUpdated)
		m.accounts.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("Busy Lock", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(false, "", nil)

		_, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "doctor-B", Actor: admin})

		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		m.locker.AssertNumberOfCalls(t, "TryLock", lockAcquireAttempts)
		m.transactor.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("Missing Account", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()
		m.locker.On("TryLock", ctx, lockKey, 30*time.Second).Return(true, "token", nil).Once()
		m.locker.On("Unlock", mock.Anything, lockKey, "token").Return(nil).Once()
		m.transactor.On("WithTransaction", ctx).Return(nil).Once()
		m.accounts.On("FindByID", ctx, "acc-1").Return(nil, nil).Once()

		_, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "doctor-B", Actor: admin})

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Blank Doctor", func(t *testing.T) {
		uc, m := newTestAssignmentUsecase()

		_, err := uc.ReassignAccount(ctx, "acc-1", &requests.ReassignDoctor{DoctorID: "  ", Actor: admin})

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
		m.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})
}
