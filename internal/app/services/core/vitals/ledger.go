package vitals

import (
	"intake-service/internal/app/models"
	"sort"
	"time"
)

// Ledger keeps a patient's single vitals record and its per-field change
// history.
type Ledger struct {
	now func() time.Time
}

func NewLedger() *Ledger {
	return NewLedgerWithClock(time.Now)
}

func NewLedgerWithClock(now func() time.Time) *Ledger {
	return &Ledger{now: now}
}

// ApplyUpdate writes submitted over record and returns one delta per field
// whose string value changed. A nil record is created from submitted and
// emits no deltas. Values are compared as entered, "70" and "70.0" differ.
func (l *Ledger) ApplyUpdate(patientID string, record *models.VitalsRecord, submitted models.VitalsValues, actor models.Actor) (*models.VitalsRecord, []models.VitalsDelta) {
	now := l.now()

	if record == nil {
		return &models.VitalsRecord{
			PatientID: patientID,
			Values:    submitted,
			CreatedBy: actor,
			CreatedAt: now,
		}, nil
	}

	updated := *record
	var deltas []models.VitalsDelta
	for _, field := range models.VitalsFields {
		oldValue := record.Values.Get(field)
		newValue := submitted.Get(field)
		if oldValue == newValue {
			continue
		}
		deltas = append(deltas, models.VitalsDelta{
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: actor,
			ChangedAt: now,
		})
	}

	updated.Values = submitted
	updated.UpdatedBy = actor.Ref()
	updated.UpdatedAt = &now
	updated.ChangeHistory.Append(deltas...)
	return &updated, deltas
}

// ReconstructHistory rebuilds the record state after each historical save,
// newest first. Deltas by the same actor whose timestamps fall within
// window of the newest delta of a group count as one save.
func ReconstructHistory(record *models.VitalsRecord, window time.Duration) []models.VitalsSnapshot {
	if record == nil || record.ChangeHistory.Len() == 0 {
		return []models.VitalsSnapshot{}
	}

	deltas := record.ChangeHistory.All()
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].ChangedAt.After(deltas[j].ChangedAt)
	})

	state := record.Values
	snapshots := make([]models.VitalsSnapshot, 0)
	for _, group := range clusterDeltas(deltas, window) {
		head := group[0]
		snapshot := models.VitalsSnapshot{
			ChangedBy: head.ChangedBy,
			ChangedAt: head.ChangedAt,
			Values:    state,
		}
		for _, delta := range group {
			if !containsField(snapshot.ChangedFields, delta.Field) {
				snapshot.ChangedFields = append(snapshot.ChangedFields, delta.Field)
			}
		}
		snapshots = append(snapshots, snapshot)

		for _, delta := range group {
			state.Set(delta.Field, delta.OldValue)
		}
	}
	return snapshots
}

// clusterDeltas expects deltas sorted newest first.
func clusterDeltas(deltas []models.VitalsDelta, window time.Duration) [][]models.VitalsDelta {
	var groups [][]models.VitalsDelta
	for _, delta := range deltas {
		if n := len(groups); n > 0 {
			head := groups[n-1][0]
			if head.ChangedBy.SameAs(delta.ChangedBy) && head.ChangedAt.Sub(delta.ChangedAt) <= window {
				groups[n-1] = append(groups[n-1], delta)
				continue
			}
		}
		groups = append(groups, []models.VitalsDelta{delta})
	}
	return groups
}

func containsField(fields []models.VitalsField, field models.VitalsField) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
