package constvars

const (
	URLParamSubmissionID = "submission_id"
	URLParamAnswerID     = "answer_id"
	URLParamAccountID    = "account_id"
	URLParamPatientID    = "patient_id"
)
