package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"time"
)

type AccountRepository interface {
	FindByID(ctx context.Context, accountID string) (*models.PatientAccount, error)
	Create(ctx context.Context, account *models.PatientAccount) error
	Update(ctx context.Context, account *models.PatientAccount) error
	FindDueReminders(ctx context.Context, until time.Time) ([]models.PatientAccount, error)
	MarkReminderSent(ctx context.Context, accountID string, kind models.ReminderKind, dueAt, sentAt time.Time) (bool, error)
}

type IntakeUsecase interface {
	Submit(ctx context.Context, request *requests.SubmitIntake) (*responses.IntakeResult, error)
	CreateServiceRequest(ctx context.Context, accountID string, request *requests.CreateServiceRequest) (*responses.Submission, error)
}

type AssignmentUsecase interface {
	ReassignAccount(ctx context.Context, accountID string, request *requests.ReassignDoctor) (*responses.Reassignment, error)
}
