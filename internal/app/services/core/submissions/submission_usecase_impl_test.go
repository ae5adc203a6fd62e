package submissions

import (
	"context"
	"errors"
	"intake-service/internal/app/contracts/mocks"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubmissionUsecaseFindByAccountID(t *testing.T) {
	ctx := context.Background()
	account := &models.PatientAccount{ID: "acc-1", AssignedDoctorID: "doctor-B"}

	t.Run("Flags Submissions With Another Doctor", func(t *testing.T) {
		submissions := new(mocks.MockSubmissionRepository)
		accounts := new(mocks.MockAccountRepository)
		core, logs := observer.New(zapcore.WarnLevel)
		uc := newSubmissionUsecase(submissions, accounts, zap.New(core))
		accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		submissions.On("FindByAccountID", ctx, "acc-1").Return([]models.SurveySubmission{
			{ID: "sub-1", AccountID: "acc-1", AssignedDoctor: "doctor-B"},
			{ID: "sub-2", AccountID: "acc-1", AssignedDoctor: "doctor-A"},
		}, nil).Once()

		result, err := uc.FindByAccountID(ctx, "acc-1")

		require.NoError(t, err)
		assert.Equal(t, "doctor-B", result.AssignedDoctorID)
		assert.Len(t, result.Submissions, 2)
		assert.Equal(t, []string{"sub-2"}, result.OutOfSync)
		assert.Equal(t, 1, logs.FilterMessage("submissionUsecase.FindByAccountID doctor assignment drift").Len())
	})

	t.Run("In Sync Account Reports Nothing", func(t *testing.T) {
		submissions := new(mocks.MockSubmissionRepository)
		accounts := new(mocks.MockAccountRepository)
		uc := newSubmissionUsecase(submissions, accounts, zap.NewNop())
		accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		submissions.On("FindByAccountID", ctx, "acc-1").Return([]models.SurveySubmission{
			{ID: "sub-1", AccountID: "acc-1", AssignedDoctor: "doctor-B"},
		}, nil).Once()

		result, err := uc.FindByAccountID(ctx, "acc-1")

		require.NoError(t, err)
		assert.Empty(t, result.OutOfSync)
	})

	t.Run("Missing Account", func(t *testing.T) {
		submissions := new(mocks.MockSubmissionRepository)
		accounts := new(mocks.MockAccountRepository)
		uc := newSubmissionUsecase(submissions, accounts, zap.NewNop())
		accounts.On("FindByID", ctx, "nope").Return(nil, nil).Once()

		_, err := uc.FindByAccountID(ctx, "nope")

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
		submissions.AssertNotCalled(t, "FindByAccountID", mock.Anything, mock.Anything)
	})

	t.Run("Repository Error Is Returned", func(t *testing.T) {
		submissions := new(mocks.MockSubmissionRepository)
		accounts := new(mocks.MockAccountRepository)
		uc := newSubmissionUsecase(submissions, accounts, zap.NewNop())
		accounts.On("FindByID", ctx, "acc-1").Return(account, nil).Once()
		submissions.On("FindByAccountID", ctx, "acc-1").Return(nil, exceptions.ErrMongoDBFindDocument(errors.New("down"))).Once()

		_, err := uc.FindByAccountID(ctx, "acc-1")

		assert.Error(t, err)
	})
}

func TestSubmissionUsecaseFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Submission", func(t *testing.T) {
		submissions := new(mocks.MockSubmissionRepository)
		uc := newSubmissionUsecase(submissions, new(mocks.MockAccountRepository), zap.NewNop())
		submissions.On("FindByID", ctx, "nope").Return(nil, nil).Once()

		_, err := uc.FindByID(ctx, "nope")

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}
