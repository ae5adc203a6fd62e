package responses

import "time"

type Account struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone,omitempty"`
	AccountStatus      string     `json:"account_status"`
	AssignedDoctorID   string     `json:"assigned_doctor_id,omitempty"`
	FollowUpDate       *time.Time `json:"follow_up_date,omitempty"`
	RefillReminderDate *time.Time `json:"refill_reminder_date,omitempty"`
	Version            int64      `json:"version"`
}

type IntakeResult struct {
	Account    Account    `json:"account"`
	Submission Submission `json:"submission"`
}

type Reassignment struct {
	AccountID          string `json:"account_id"`
	DoctorID           string `json:"doctor_id"`
	SubmissionsUpdated int64  `json:"submissions_updated"`
}
