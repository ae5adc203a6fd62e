package answers

import (
	"context"
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

func newTestAnswerUsecase() (*answerUsecase, *mocks.MockSubmissionRepository, *mocks.MockCategoryCatalog) {
	repo := new(mocks.MockSubmissionRepository)
	catalog := new(mocks.MockCategoryCatalog)
	cfg := &config.InternalConfig{Workflow: config.AppWorkflow{OptimisticRetryAttempts: 3}}
	ledger, _ := newTestLedger()
	uc := newAnswerUsecase(repo, catalog, ledger, cfg, zap.NewNop())
	return uc, repo, catalog
}

// loadSubmission returns a fresh copy on every call, like a database read.
func loadSubmission(items ...models.AnswerItem) func() *models.SurveySubmission {
	return func() *models.SurveySubmission {
		answers := make([]models.AnswerItem, len(items))
		copy(answers, items)
		return &models.SurveySubmission{ID: "sub-1", Status: models.SubmissionStatusNew, Answers: answers, Version: 4}
	}
}

func TestAnswerUsecaseMutations(t *testing.T) {
	ctx := context.Background()
	existing := models.AnswerItem{ID: "a-1", QuestionText: "Allergies", Answer: models.TextAnswer("none")}

	t.Run("Append Saves And Returns The Item", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		load := loadSubmission(existing)
		repo.On("FindByID", ctx, "sub-1").Return(load(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(s *models.SurveySubmission) bool {
			return len(s.Answers) == 2 && s.Answers[0].QuestionText == "Smoker"
		})).Return(nil).Once()

		item, err := uc.AppendAnswer(ctx, "sub-1", &requests.AppendAnswer{
			QuestionText: "Smoker",
			Answer:       requests.AnswerValue{Options: []string{"no"}, IsList: true},
			Actor:        nurse,
		})

		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
		assert.Equal(t, []string{"no"}, item.Answer)
		assert.Equal(t, nurse.ID, item.AddedBy.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Conflict Reloads And Reapplies", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		load := loadSubmission(existing)
		repo.On("FindByID", ctx, "sub-1").Return(load(), nil).Once()
		repo.On("FindByID", ctx, "sub-1").Return(load(), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(exceptions.ErrVersionConflict(constvars.ResourceSubmission, "sub-1")).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		item, err := uc.EditAnswer(ctx, "sub-1", "a-1", &requests.EditAnswer{
			QuestionText: "Allergies",
			Answer:       requests.AnswerValue{Text: "penicillin"},
			Actor:        nurse,
		})

		require.NoError(t, err)
		assert.Equal(t, "penicillin", item.Answer)
		require.Len(t, item.EditHistory, 1)
		assert.Equal(t, "none", item.EditHistory[0].PreviousAnswer)
		repo.AssertNumberOfCalls(t, "FindByID", 2)
		repo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("Retries Are Bounded", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		load := loadSubmission(existing)
		for i := 0; i < 3; i++ {
			repo.On("FindByID", ctx, "sub-1").Return(load(), nil).Once()
		}
		repo.On("Update", ctx, mock.Anything).Return(exceptions.ErrVersionConflict(constvars.ResourceSubmission, "sub-1"))

		_, err := uc.DiscontinueAnswer(ctx, "sub-1", "a-1", &requests.DiscontinueAnswer{Reason: "resolved", Actor: nurse})

		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		repo.AssertNumberOfCalls(t, "Update", 3)
	})

	t.Run("Business Errors Are Not Retried", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		locked := existing
		locked.IsLocked = true
		repo.On("FindByID", ctx, "sub-1").Return(loadSubmission(locked)(), nil).Once()

		_, err := uc.AttachPrescription(ctx, "sub-1", "a-1", &requests.AttachPrescription{Medication: "Ibuprofen", Actor: nurse})

		assert.True(t, exceptions.IsKind(err, exceptions.KindLocked))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing Submission", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		repo.On("FindByID", ctx, "nope").Return(nil, nil).Once()

		err := uc.RemoveAnswer(ctx, "nope", "a-1")

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Remove Deletes Locked Item", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		locked := existing
		locked.IsLocked = true
		repo.On("FindByID", ctx, "sub-1").Return(loadSubmission(locked)(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(s *models.SurveySubmission) bool {
			return len(s.Answers) == 0
		})).Return(nil).Once()

		require.NoError(t, uc.RemoveAnswer(ctx, "sub-1", "a-1"))
		repo.AssertExpectations(t)
	})
}

func TestAnswerUsecaseGroupedAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("Groups In Catalog Order", func(t *testing.T) {
		uc, repo, catalog := newTestAnswerUsecase()
		repo.On("FindByID", ctx, "sub-1").Return(loadSubmission(
			models.AnswerItem{ID: "1", CategoryID: "cat-b", QuestionText: "q1"},
			models.AnswerItem{ID: "2", CategoryID: "gone", QuestionText: "q2"},
			models.AnswerItem{ID: "3", CategoryID: "cat-a", QuestionText: "q3", Discontinued: true},
			models.AnswerItem{ID: "4", CategoryID: "cat-a", QuestionText: "q4"},
		)(), nil).Once()
		catalog.On("Lookup", ctx).Return(models.NewCategoryIndex([]models.Category{
			{ID: "cat-a", Name: "Medication", Order: 1},
			{ID: "cat-b", Name: "History", Order: 2},
		}), nil).Once()

		grouped, err := uc.GroupedAnswers(ctx, "sub-1")

		require.NoError(t, err)
		require.Len(t, grouped.Groups, 3)
		assert.Equal(t, "Medication", grouped.Groups[0].CategoryName)
		assert.Equal(t, "4", grouped.Groups[0].Items[0].ID)
		assert.Equal(t, "3", grouped.Groups[0].Items[1].ID)
		assert.Equal(t, "History", grouped.Groups[1].CategoryName)
		assert.Equal(t, constvars.UncategorizedGroupKey, grouped.Groups[2].CategoryID)
	})

	t.Run("Missing Submission", func(t *testing.T) {
		uc, repo, _ := newTestAnswerUsecase()
		repo.On("FindByID", ctx, "nope").Return(nil, nil).Once()

		_, err := uc.GroupedAnswers(ctx, "nope")

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}
