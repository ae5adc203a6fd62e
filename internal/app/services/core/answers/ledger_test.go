package answers

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nurse  = models.Actor{ID: "staff-1", Name: "Nora Nurse", Role: constvars.ActorRoleNurse}
	doctor = models.Actor{ID: "staff-2", Name: "Dan Doctor", Role: constvars.ActorRoleDoctor}
)

func newTestLedger() (*Ledger, *time.Time) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seq := 0
	ledger := NewLedgerWithClock(
		func() time.Time { return now },
		func() string {
			seq++
			return fmt.Sprintf("item-%d", seq)
		},
	)
	return ledger, &now
}

func seedItems(t *testing.T, ledger *Ledger, texts ...string) []models.AnswerItem {
	t.Helper()
	var list []models.AnswerItem
	// prepend in reverse so the list reads in the given order
	for i := len(texts) - 1; i >= 0; i-- {
		var err error
		list, err = ledger.Append(list, models.AnswerItem{ID: texts[i], QuestionText: texts[i], Answer: models.TextAnswer("yes")}, nurse)
		require.NoError(t, err)
	}
	return list
}

func TestLedgerAppend(t *testing.T) {
	t.Run("Prepends And Stamps", func(t *testing.T) {
		ledger, now := newTestLedger()
		list := seedItems(t, ledger, "existing")

		updated, err := ledger.Append(list, models.AnswerItem{QuestionText: "Allergies", Answer: models.MultiSelectAnswer("Peanuts")}, doctor)

		require.NoError(t, err)
		require.Len(t, updated, 2)
		assert.Equal(t, "item-1", updated[0].ID)
		assert.Equal(t, doctor, updated[0].AddedBy)
		assert.Equal(t, *now, updated[0].AddedAt)
		assert.Equal(t, "existing", updated[1].ID)
		assert.Len(t, list, 1, "input list must not change")
	})

	t.Run("Blank Question Text", func(t *testing.T) {
		ledger, _ := newTestLedger()

		_, err := ledger.Append(nil, models.AnswerItem{QuestionText: "   "}, nurse)

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "a")

		_, err := ledger.Append(list, models.AnswerItem{ID: "a", QuestionText: "again"}, nurse)

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Resets Audit Fields", func(t *testing.T) {
		ledger, _ := newTestLedger()
		item := models.AnswerItem{
			QuestionText:      "Smoker",
			Discontinued:      true,
			DiscontinueReason: "copied",
			EditHistory:       models.NewAppendLog(models.EditEntry{NewQuestionText: "old"}),
			IsLocked:          true,
		}

		updated, err := ledger.Append(nil, item, nurse)

		require.NoError(t, err)
		assert.False(t, updated[0].Discontinued)
		assert.Empty(t, updated[0].DiscontinueReason)
		assert.Equal(t, 0, updated[0].EditHistory.Len())
		assert.True(t, updated[0].IsLocked)
	})
}

func TestLedgerEdit(t *testing.T) {
	t.Run("Records Previous Values", func(t *testing.T) {
		ledger, now := newTestLedger()
		list := seedItems(t, ledger, "Weight loss goal")

		updated, err := ledger.Edit(list, "Weight loss goal", "Target weight", models.TextAnswer("70kg"), doctor)

		require.NoError(t, err)
		item := updated[0]
		assert.Equal(t, "Target weight", item.QuestionText)
		assert.Equal(t, models.TextAnswer("70kg"), item.Answer)
		require.Equal(t, 1, item.EditHistory.Len())
		entry := item.EditHistory.At(0)
		assert.Equal(t, "Weight loss goal", entry.PreviousQuestionText)
		assert.Equal(t, models.TextAnswer("yes"), entry.PreviousAnswer)
		assert.Equal(t, doctor, entry.EditedBy)
		assert.Equal(t, doctor, *item.EditedBy)
		assert.Equal(t, *now, *item.EditedAt)
		assert.Equal(t, 0, list[0].EditHistory.Len(), "input list must not change")
	})

	t.Run("History Grows With Every Effective Edit", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")

		var err error
		for i := 1; i <= 3; i++ {
			list, err = ledger.Edit(list, "q", "q", models.TextAnswer(fmt.Sprintf("v%d", i)), nurse)
			require.NoError(t, err)
			assert.Equal(t, i, list[0].EditHistory.Len())
		}
	})

	t.Run("Identical Values Record Nothing", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")

		updated, err := ledger.Edit(list, "q", "q", models.TextAnswer("yes"), doctor)

		require.NoError(t, err)
		assert.Equal(t, 0, updated[0].EditHistory.Len())
		assert.Nil(t, updated[0].EditedBy)
	})

	t.Run("Missing Item", func(t *testing.T) {
		ledger, _ := newTestLedger()

		_, err := ledger.Edit(nil, "nope", "q", models.TextAnswer("a"), nurse)

		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Discontinued Item Rejects Edit", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")
		list, err := ledger.Discontinue(list, "q", "stopped", nurse)
		require.NoError(t, err)

		_, err = ledger.Edit(list, "q", "new", models.TextAnswer("a"), nurse)

		assert.True(t, exceptions.IsKind(err, exceptions.KindLocked))
	})
}

func TestLedgerLockEnforcement(t *testing.T) {
	ledger, _ := newTestLedger()
	list, err := ledger.Append(nil, models.AnswerItem{ID: "locked", QuestionText: "Semaglutide", IsLocked: true}, doctor)
	require.NoError(t, err)

	t.Run("Locked Item Rejects Edit", func(t *testing.T) {
		_, err := ledger.Edit(list, "locked", "other", models.TextAnswer("x"), nurse)
		assert.True(t, exceptions.IsKind(err, exceptions.KindLocked))
	})

	t.Run("Locked Item Rejects Discontinue", func(t *testing.T) {
		_, err := ledger.Discontinue(list, "locked", "no longer taken", nurse)
		assert.True(t, exceptions.IsKind(err, exceptions.KindLocked))
	})

	t.Run("Locked Item Rejects Prescription", func(t *testing.T) {
		_, err := ledger.AttachPrescription(list, "locked", models.PrescriptionDetails{Medication: "Metformin"}, doctor)
		assert.True(t, exceptions.IsKind(err, exceptions.KindLocked))
	})

	t.Run("Locked Item Can Be Removed", func(t *testing.T) {
		updated, err := ledger.Remove(list, "locked")
		require.NoError(t, err)
		assert.Empty(t, updated)
	})
}

func TestLedgerDiscontinue(t *testing.T) {
	t.Run("Second Call Keeps First Reason", func(t *testing.T) {
		ledger, now := newTestLedger()
		list := seedItems(t, ledger, "q")

		list, err := ledger.Discontinue(list, "q", "side effects", doctor)
		require.NoError(t, err)
		_, err = ledger.Discontinue(list, "q", "another reason", nurse)

		assert.True(t, exceptions.IsKind(err, exceptions.KindAlreadyDiscontinued))
		assert.True(t, list[0].Discontinued)
		assert.Equal(t, "side effects", list[0].DiscontinueReason)
		assert.Equal(t, doctor, *list[0].DiscontinuedBy)
		assert.Equal(t, *now, *list[0].DiscontinuedAt)
	})

	t.Run("Blank Reason", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")

		_, err := ledger.Discontinue(list, "q", " ", doctor)

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Leaves Item Otherwise Unchanged", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")

		updated, err := ledger.Discontinue(list, "q", "resolved", doctor)

		require.NoError(t, err)
		assert.Equal(t, list[0].QuestionText, updated[0].QuestionText)
		assert.Equal(t, list[0].Answer, updated[0].Answer)
		assert.False(t, list[0].Discontinued, "input list must not change")
	})
}

func TestLedgerAttachPrescription(t *testing.T) {
	t.Run("Upserts Details", func(t *testing.T) {
		ledger, now := newTestLedger()
		list := seedItems(t, ledger, "q")

		list, err := ledger.AttachPrescription(list, "q", models.PrescriptionDetails{Medication: "Semaglutide", Dosage: "0.25mg"}, doctor)
		require.NoError(t, err)
		list, err = ledger.AttachPrescription(list, "q", models.PrescriptionDetails{Medication: "Semaglutide", Dosage: "0.5mg", Refills: 2}, doctor)
		require.NoError(t, err)

		item := list[0]
		assert.True(t, item.IsPrescription)
		require.NotNil(t, item.PrescriptionDetails)
		assert.Equal(t, "0.5mg", item.PrescriptionDetails.Dosage)
		assert.Equal(t, 2, item.PrescriptionDetails.Refills)
		assert.Equal(t, doctor, item.PrescriptionDetails.PrescribedBy)
		assert.Equal(t, *now, item.PrescriptionDetails.PrescribedAt)
	})

	t.Run("Blank Medication", func(t *testing.T) {
		ledger, _ := newTestLedger()
		list := seedItems(t, ledger, "q")

		_, err := ledger.AttachPrescription(list, "q", models.PrescriptionDetails{}, doctor)

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestLedgerRemove(t *testing.T) {
	ledger, _ := newTestLedger()
	list := seedItems(t, ledger, "a", "b", "c")

	t.Run("Deletes Without Trace", func(t *testing.T) {
		updated, err := ledger.Remove(list, "b")

		require.NoError(t, err)
		require.Len(t, updated, 2)
		assert.Equal(t, "a", updated[0].ID)
		assert.Equal(t, "c", updated[1].ID)
		assert.Len(t, list, 3)
	})

	t.Run("Missing Item", func(t *testing.T) {
		_, err := ledger.Remove(list, "z")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestGroupByCategory(t *testing.T) {
	lookup := models.NewCategoryIndex([]models.Category{
		{ID: "cat-history", Name: "History", Order: 2},
		{ID: "cat-meds", Name: "Current Medication", Order: 1},
	})

	t.Run("Stable Partition", func(t *testing.T) {
		list := []models.AnswerItem{
			{ID: "A", CategoryID: "cat-history"},
			{ID: "B", CategoryID: "cat-history", Discontinued: true},
			{ID: "C", CategoryID: "cat-history"},
		}

		groups := GroupByCategory(list, lookup)

		var ids []string
		for _, item := range groups["cat-history"] {
			ids = append(ids, item.ID)
		}
		assert.Equal(t, []string{"A", "C", "B"}, ids)
	})

	t.Run("Unknown And Empty Categories", func(t *testing.T) {
		list := []models.AnswerItem{
			{ID: "x"},
			{ID: "y", CategoryID: "cat-deleted"},
			{ID: "z", CategoryID: "cat-meds"},
		}

		groups := GroupByCategory(list, lookup)

		assert.Len(t, groups[constvars.UncategorizedGroupKey], 2)
		assert.Len(t, groups["cat-meds"], 1)
	})

	t.Run("Ordered By Catalog", func(t *testing.T) {
		list := []models.AnswerItem{
			{ID: "1", CategoryID: "cat-history"},
			{ID: "2"},
			{ID: "3", CategoryID: "cat-meds"},
		}

		groups := OrderedGroups(list, lookup)

		require.Len(t, groups, 3)
		assert.Equal(t, "cat-meds", groups[0].Key)
		assert.Equal(t, "cat-history", groups[1].Key)
		assert.Equal(t, constvars.UncategorizedGroupKey, groups[2].Key)
		assert.Nil(t, groups[2].Category)
	})
}
