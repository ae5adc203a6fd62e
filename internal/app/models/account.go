package models

import "time"

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusActive   AccountStatus = "active"
	AccountStatusRejected AccountStatus = "rejected"
)

type PatientAccount struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	Name               string        `json:"name" bson:"name"`
	Email              string        `json:"email" bson:"email"`
	Phone              string        `json:"phone,omitempty" bson:"phone,omitempty"`
	AccountStatus      AccountStatus `json:"accountStatus" bson:"accountStatus"`
	AssignedDoctorID   string        `json:"assignedDoctorId,omitempty" bson:"assignedDoctorId,omitempty"`
	FollowUpDate       *time.Time    `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	RefillReminderDate *time.Time    `json:"refillReminderDate,omitempty" bson:"refillReminderDate,omitempty"`
	FollowUpRemindedAt *time.Time    `json:"followUpRemindedAt,omitempty" bson:"followUpRemindedAt,omitempty"`
	RefillRemindedAt   *time.Time    `json:"refillRemindedAt,omitempty" bson:"refillRemindedAt,omitempty"`
	Version            int64         `json:"version" bson:"version"`
	TimeModel          `bson:",inline"`
}

func (a *PatientAccount) IsActive() bool {
	return a.AccountStatus == AccountStatusActive
}

type ReminderKind string

const (
	ReminderKindFollowUp ReminderKind = "follow_up"
	ReminderKindRefill   ReminderKind = "refill"
)

// DueReminders lists the reminders of the account that are due at until
// and were not sent yet.
func (a *PatientAccount) DueReminders(until time.Time) []ReminderKind {
	var due []ReminderKind
	if a.FollowUpDate != nil && a.FollowUpRemindedAt == nil && !a.FollowUpDate.After(until) {
		due = append(due, ReminderKindFollowUp)
	}
	if a.RefillReminderDate != nil && a.RefillRemindedAt == nil && !a.RefillReminderDate.After(until) {
		due = append(due, ReminderKindRefill)
	}
	return due
}
