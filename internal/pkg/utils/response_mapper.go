package utils

import (
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/responses"
)

func ConvertActorToResponse(actor models.Actor) responses.Actor {
	return responses.Actor{ID: actor.ID, Name: actor.Name, Role: actor.Role}
}

func convertActorRefToResponse(actor *models.Actor) *responses.Actor {
	if actor == nil {
		return nil
	}
	converted := ConvertActorToResponse(*actor)
	return &converted
}

// ConvertAnswerValueToResponse renders text answers as a string and multi
// select answers as a list of strings.
func ConvertAnswerValueToResponse(value models.AnswerValue) interface{} {
	if value.IsMultiSelect() {
		options := make([]string, len(value.Options))
		copy(options, value.Options)
		return options
	}
	return value.Text
}

func ConvertAnswerItemToResponse(item models.AnswerItem) responses.AnswerItem {
	history := make([]responses.EditEntry, 0, item.EditHistory.Len())
	for _, entry := range item.EditHistory.All() {
		history = append(history, responses.EditEntry{
			PreviousQuestionText: entry.PreviousQuestionText,
			NewQuestionText:      entry.NewQuestionText,
			PreviousAnswer:       ConvertAnswerValueToResponse(entry.PreviousAnswer),
			NewAnswer:            ConvertAnswerValueToResponse(entry.NewAnswer),
			EditedBy:             ConvertActorToResponse(entry.EditedBy),
			EditedAt:             entry.EditedAt,
		})
	}

	var prescription *responses.Prescription
	if details := item.PrescriptionDetails; details != nil {
		prescription = &responses.Prescription{
			Medication:        details.Medication,
			Dosage:            details.Dosage,
			Frequency:         details.Frequency,
			Duration:          details.Duration,
			Refills:           details.Refills,
			Instructions:      details.Instructions,
			TreatmentOptionID: details.TreatmentOptionID,
			PrescribedBy:      ConvertActorToResponse(details.PrescribedBy),
			PrescribedAt:      details.PrescribedAt,
		}
	}

	return responses.AnswerItem{
		ID:                  item.ID,
		CategoryID:          item.CategoryID,
		QuestionID:          item.QuestionID,
		QuestionText:        item.QuestionText,
		Answer:              ConvertAnswerValueToResponse(item.Answer),
		AddedBy:             ConvertActorToResponse(item.AddedBy),
		AddedAt:             item.AddedAt,
		EditedBy:            convertActorRefToResponse(item.EditedBy),
		EditedAt:            item.EditedAt,
		EditHistory:         history,
		Discontinued:        item.Discontinued,
		DiscontinuedBy:      convertActorRefToResponse(item.DiscontinuedBy),
		DiscontinuedAt:      item.DiscontinuedAt,
		DiscontinueReason:   item.DiscontinueReason,
		IsPrescription:      item.IsPrescription,
		PrescriptionDetails: prescription,
		IsLocked:            item.IsLocked,
	}
}

func ConvertAnswerItemsToResponse(items []models.AnswerItem) []responses.AnswerItem {
	converted := make([]responses.AnswerItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, ConvertAnswerItemToResponse(item))
	}
	return converted
}

func ConvertChatMessageToResponse(message models.ChatMessage) responses.ChatMessage {
	return responses.ChatMessage{
		ID:         message.ID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		SenderRole: message.SenderRole,
		Text:       message.Text,
		SentAt:     message.SentAt,
	}
}

func ConvertSubmissionToResponse(submission *models.SurveySubmission) *responses.Submission {
	messages := make([]responses.ChatMessage, 0, submission.Messages.Len())
	for _, message := range submission.Messages.All() {
		messages = append(messages, ConvertChatMessageToResponse(message))
	}

	statusHistory := make([]responses.StatusChange, 0, submission.StatusHistory.Len())
	for _, change := range submission.StatusHistory.All() {
		statusHistory = append(statusHistory, responses.StatusChange{
			From:      string(change.From),
			To:        string(change.To),
			ChangedBy: ConvertActorToResponse(change.ChangedBy),
			ChangedAt: change.ChangedAt,
			Reason:    change.Reason,
		})
	}

	return &responses.Submission{
		ID:                 submission.ID,
		AccountID:          submission.AccountID,
		Kind:               string(submission.Kind),
		Status:             string(submission.Status),
		AssignedDoctor:     submission.AssignedDoctor,
		FollowUp:           submission.FollowUp,
		RefillReminder:     submission.RefillReminder,
		ClinicalMedication: submission.ClinicalMedication,
		ClinicalTreatment:  submission.ClinicalTreatment,
		ProviderNote:       submission.ProviderNote,
		Messages:           messages,
		Answers:            ConvertAnswerItemsToResponse(submission.Answers),
		StatusHistory:      statusHistory,
		Version:            submission.Version,
		CreatedAt:          submission.CreatedAt,
		UpdatedAt:          submission.UpdatedAt,
	}
}

func ConvertAccountToResponse(account *models.PatientAccount) *responses.Account {
	return &responses.Account{
		ID:                 account.ID,
		Name:               account.Name,
		Email:              account.Email,
		Phone:              account.Phone,
		AccountStatus:      string(account.AccountStatus),
		AssignedDoctorID:   account.AssignedDoctorID,
		FollowUpDate:       account.FollowUpDate,
		RefillReminderDate: account.RefillReminderDate,
		Version:            account.Version,
	}
}

func ConvertVitalsValuesToResponse(values models.VitalsValues) responses.VitalsValues {
	return responses.VitalsValues{
		Weight:                 values.Weight,
		Height:                 values.Height,
		Temperature:            values.Temperature,
		BloodPressureSystolic:  values.BloodPressureSystolic,
		BloodPressureDiastolic: values.BloodPressureDiastolic,
		RespiratoryRate:        values.RespiratoryRate,
		Pulse:                  values.Pulse,
		BloodSugar:             values.BloodSugar,
		Fasting:                values.Fasting,
		OxygenSaturation:       values.OxygenSaturation,
		BMI:                    values.BMI,
		Notes:                  values.Notes,
	}
}

func ConvertVitalsDeltasToResponse(deltas []models.VitalsDelta) []responses.VitalsDelta {
	converted := make([]responses.VitalsDelta, 0, len(deltas))
	for _, delta := range deltas {
		converted = append(converted, responses.VitalsDelta{
			Field:     string(delta.Field),
			OldValue:  delta.OldValue,
			NewValue:  delta.NewValue,
			ChangedBy: ConvertActorToResponse(delta.ChangedBy),
			ChangedAt: delta.ChangedAt,
		})
	}
	return converted
}

func ConvertVitalsToResponse(record *models.VitalsRecord) *responses.Vitals {
	return &responses.Vitals{
		PatientID:     record.PatientID,
		Values:        ConvertVitalsValuesToResponse(record.Values),
		CreatedBy:     ConvertActorToResponse(record.CreatedBy),
		CreatedAt:     record.CreatedAt,
		UpdatedBy:     convertActorRefToResponse(record.UpdatedBy),
		UpdatedAt:     record.UpdatedAt,
		ChangeHistory: ConvertVitalsDeltasToResponse(record.ChangeHistory.All()),
		Version:       record.Version,
	}
}

func ConvertVitalsSnapshotsToResponse(snapshots []models.VitalsSnapshot) []responses.VitalsSnapshot {
	converted := make([]responses.VitalsSnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		fields := make([]string, 0, len(snapshot.ChangedFields))
		for _, field := range snapshot.ChangedFields {
			fields = append(fields, string(field))
		}
		converted = append(converted, responses.VitalsSnapshot{
			ChangedBy:     ConvertActorToResponse(snapshot.ChangedBy),
			ChangedAt:     snapshot.ChangedAt,
			ChangedFields: fields,
			Values:        ConvertVitalsValuesToResponse(snapshot.Values),
		})
	}
	return converted
}
