package assignments

import "intake-service/internal/app/models"

// SyncDoctor assigns doctorID to both the account and the submission. The
// two records must be persisted together; it reports whether either of
// them changed.
func SyncDoctor(account *models.PatientAccount, submission *models.SurveySubmission, doctorID string) bool {
	changed := account.AssignedDoctorID != doctorID || submission.AssignedDoctor != doctorID
	account.AssignedDoctorID = doctorID
	submission.AssignedDoctor = doctorID
	return changed
}

// InSync reports whether the submission carries the account's doctor.
func InSync(account *models.PatientAccount, submission *models.SurveySubmission) bool {
	return account.AssignedDoctorID == submission.AssignedDoctor
}
