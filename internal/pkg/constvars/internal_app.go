package constvars

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

// CategoryNameCurrentMedication is the catalog category receiving the
// locked summary item written when a case is finished.
const CategoryNameCurrentMedication = "Current Medication"

// UncategorizedGroupKey is the grouping key for answer items without a
// known category.
const UncategorizedGroupKey = "uncategorized"

const (
	ActorRoleDoctor = "doctor"
	ActorRoleNurse  = "nurse"
	ActorRoleAdmin  = "admin"
	ActorRoleStaff  = "staff"
	// ActorRolePatient is stamped on items the patient entered through intake
	ActorRolePatient = "patient"
)

const (
	WorkflowEventIntakeSubmitted  = "intake.submitted"
	WorkflowEventServiceRequested = "case.service_requested"
	WorkflowEventAccountActivated = "account.activated"
	WorkflowEventCaseReviewed     = "case.reviewed"
	WorkflowEventCaseArchived     = "case.archived"
	WorkflowEventCaseClosed       = "case.closed"
	WorkflowEventMessageSent      = "case.message_sent"
	WorkflowEventDoctorAssigned   = "account.doctor_assigned"
	WorkflowEventFollowUpDue      = "reminder.follow_up_due"
	WorkflowEventRefillDue        = "reminder.refill_due"
)

const (
	ResourceSubmission = "submission"
	ResourceAccount    = "account"
	ResourceVitals     = "vitals"
)

const (
	LedgerAnswers = "answers"
	LedgerVitals  = "vitals"
)
