package answers

import (
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sort"
	"strings"
	"time"
)

// Ledger applies audited mutations to a submission's answer list. Every
// operation works on a copy and returns the updated list, so the caller
// decides whether to persist it.
type Ledger struct {
	now   func() time.Time
	newID func() string
}

func NewLedger() *Ledger {
	return NewLedgerWithClock(time.Now, utils.GenerateAnswerItemID)
}

func NewLedgerWithClock(now func() time.Time, newID func() string) *Ledger {
	return &Ledger{now: now, newID: newID}
}

// Append prepends item, stamped with actor and the current time. Audit
// fields of item are reset; an empty id is generated.
func (l *Ledger) Append(list []models.AnswerItem, item models.AnswerItem, actor models.Actor) ([]models.AnswerItem, error) {
	if strings.TrimSpace(item.QuestionText) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientQuestionTextRequired)
	}
	if item.ID == "" {
		item.ID = l.newID()
	}
	if models.FindAnswerItem(list, item.ID) >= 0 {
		return nil, exceptions.ErrDuplicateAnswerItem(item.ID)
	}

	item.AddedBy = actor
	item.AddedAt = l.now()
	item.EditedBy = nil
	item.EditedAt = nil
	item.EditHistory = models.AppendLog[models.EditEntry]{}
	item.Discontinued = false
	item.DiscontinuedBy = nil
	item.DiscontinuedAt = nil
	item.DiscontinueReason = ""

	updated := make([]models.AnswerItem, 0, len(list)+1)
	updated = append(updated, item)
	updated = append(updated, list...)
	return updated, nil
}

// Edit replaces the question text and answer of an item and records the
// previous values. Submitting the current values again changes nothing.
func (l *Ledger) Edit(list []models.AnswerItem, itemID, newQuestionText string, newAnswer models.AnswerValue, actor models.Actor) ([]models.AnswerItem, error) {
	if strings.TrimSpace(newQuestionText) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientQuestionTextRequired)
	}

	updated, idx, err := mutable(list, itemID)
	if err != nil {
		return nil, err
	}
	item := &updated[idx]

	if item.QuestionText == newQuestionText && item.Answer.Equal(newAnswer) {
		return updated, nil
	}

	editedAt := l.now()
	item.EditHistory.Append(models.EditEntry{
		PreviousQuestionText: item.QuestionText,
		NewQuestionText:      newQuestionText,
		PreviousAnswer:       item.Answer,
		NewAnswer:            newAnswer,
		EditedBy:             actor,
		EditedAt:             editedAt,
	})
	item.QuestionText = newQuestionText
	item.Answer = newAnswer
	item.EditedBy = actor.Ref()
	item.EditedAt = &editedAt
	return updated, nil
}

// Discontinue marks an item inactive. The item stays in the list with its
// history; a second call is rejected and keeps the first reason.
func (l *Ledger) Discontinue(list []models.AnswerItem, itemID, reason string, actor models.Actor) ([]models.AnswerItem, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientDiscontinueReasonRequired)
	}

	idx := models.FindAnswerItem(list, itemID)
	if idx < 0 {
		return nil, exceptions.ErrAnswerItemNotFound(itemID)
	}
	if list[idx].Discontinued {
		return nil, exceptions.ErrAlreadyDiscontinued(itemID)
	}
	if list[idx].IsLocked {
		return nil, exceptions.ErrAnswerItemLocked(itemID)
	}

	updated := clone(list)
	item := &updated[idx]
	discontinuedAt := l.now()
	item.Discontinued = true
	item.DiscontinuedBy = actor.Ref()
	item.DiscontinuedAt = &discontinuedAt
	item.DiscontinueReason = reason
	return updated, nil
}

// AttachPrescription sets or replaces the prescription of an item.
func (l *Ledger) AttachPrescription(list []models.AnswerItem, itemID string, details models.PrescriptionDetails, actor models.Actor) ([]models.AnswerItem, error) {
	if strings.TrimSpace(details.Medication) == "" {
		return nil, exceptions.ErrValidation(nil, constvars.ErrClientPrescriptionMedicationMissing)
	}

	updated, idx, err := mutable(list, itemID)
	if err != nil {
		return nil, err
	}

	details.PrescribedBy = actor
	details.PrescribedAt = l.now()
	updated[idx].IsPrescription = true
	updated[idx].PrescriptionDetails = &details
	return updated, nil
}

// Remove deletes an item permanently without leaving an audit entry.
// Locked items can be removed.
func (l *Ledger) Remove(list []models.AnswerItem, itemID string) ([]models.AnswerItem, error) {
	idx := models.FindAnswerItem(list, itemID)
	if idx < 0 {
		return nil, exceptions.ErrAnswerItemNotFound(itemID)
	}

	updated := make([]models.AnswerItem, 0, len(list)-1)
	updated = append(updated, list[:idx]...)
	updated = append(updated, list[idx+1:]...)
	return updated, nil
}

// GroupByCategory maps each category id to its items, active items first
// and discontinued items last, keeping list order within both. Items whose
// category is empty or unknown to lookup are grouped under
// constvars.UncategorizedGroupKey. A nil lookup accepts every category id.
func GroupByCategory(list []models.AnswerItem, lookup models.CategoryLookup) map[string][]models.AnswerItem {
	groups := make(map[string][]models.AnswerItem)
	for _, item := range list {
		if item.Discontinued {
			continue
		}
		key := groupKey(item, lookup)
		groups[key] = append(groups[key], item)
	}
	for _, item := range list {
		if !item.Discontinued {
			continue
		}
		key := groupKey(item, lookup)
		groups[key] = append(groups[key], item)
	}
	return groups
}

type Group struct {
	Key      string
	Category *models.Category
	Items    []models.AnswerItem
}

// OrderedGroups returns GroupByCategory sorted by catalog order, with the
// uncategorized group last.
func OrderedGroups(list []models.AnswerItem, lookup models.CategoryLookup) []Group {
	grouped := GroupByCategory(list, lookup)

	groups := make([]Group, 0, len(grouped))
	for key, items := range grouped {
		group := Group{Key: key, Items: items}
		if key != constvars.UncategorizedGroupKey && lookup != nil {
			if category, ok := lookup.CategoryByID(key); ok {
				group.Category = &category
			}
		}
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if (a.Key == constvars.UncategorizedGroupKey) != (b.Key == constvars.UncategorizedGroupKey) {
			return b.Key == constvars.UncategorizedGroupKey
		}
		if a.Category != nil && b.Category != nil && a.Category.Order != b.Category.Order {
			return a.Category.Order < b.Category.Order
		}
		return a.Key < b.Key
	})
	return groups
}

func groupKey(item models.AnswerItem, lookup models.CategoryLookup) string {
	if item.CategoryID == "" {
		return constvars.UncategorizedGroupKey
	}
	if lookup == nil {
		return item.CategoryID
	}
	if _, ok := lookup.CategoryByID(item.CategoryID); !ok {
		return constvars.UncategorizedGroupKey
	}
	return item.CategoryID
}

// mutable copies list and returns the index of itemID after checking the
// item accepts audited changes.
func mutable(list []models.AnswerItem, itemID string) ([]models.AnswerItem, int, error) {
	idx := models.FindAnswerItem(list, itemID)
	if idx < 0 {
		return nil, -1, exceptions.ErrAnswerItemNotFound(itemID)
	}
	if list[idx].IsLocked {
		return nil, -1, exceptions.ErrAnswerItemLocked(itemID)
	}
	if list[idx].Discontinued {
		return nil, -1, exceptions.ErrAnswerItemDiscontinued(itemID)
	}
	return clone(list), idx, nil
}

func clone(list []models.AnswerItem) []models.AnswerItem {
	updated := make([]models.AnswerItem, len(list))
	copy(updated, list)
	return updated
}
