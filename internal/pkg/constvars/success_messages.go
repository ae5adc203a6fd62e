package constvars

const (
	IntakeSubmittedSuccessMessage       = "intake submitted successfully"
	ServiceRequestCreatedSuccessMessage = "service request created successfully"
	GetSubmissionSuccessMessage         = "submission fetched successfully"
	GetAccountSubmissionsSuccessMessage = "account submissions fetched successfully"
	GetAnswersSuccessMessage            = "answers fetched successfully"
	AppendAnswerSuccessMessage          = "answer added successfully"
	EditAnswerSuccessMessage            = "answer updated successfully"
	DiscontinueAnswerSuccessMessage     = "answer discontinued successfully"
	AttachPrescriptionSuccessMessage    = "prescription saved successfully"
	RemoveAnswerSuccessMessage          = "answer deleted permanently"
	ApproveSubmissionSuccessMessage     = "submission approved successfully"
	RejectSubmissionSuccessMessage      = "submission rejected successfully"
	FinishTaskSuccessMessage            = "task finished successfully"
	SendMessageSuccessMessage           = "message sent successfully"
	ReassignDoctorSuccessMessage        = "doctor assigned successfully"
	GetVitalsSuccessMessage             = "vitals fetched successfully"
	UpdateVitalsSuccessMessage          = "vitals updated successfully"
	GetVitalsHistorySuccessMessage      = "vitals history fetched successfully"
)
