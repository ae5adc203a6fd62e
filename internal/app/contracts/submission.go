package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
)

type SubmissionUsecase interface {
	FindByID(ctx context.Context, submissionID string) (*responses.Submission, error)
	FindByAccountID(ctx context.Context, accountID string) (*responses.AccountSubmissions, error)
}

// SubmissionRepository persists survey submissions. Update is a compare and
// swap on the stored version and fails with a conflict when the document
// changed since it was loaded.
type SubmissionRepository interface {
	FindByID(ctx context.Context, submissionID string) (*models.SurveySubmission, error)
	FindByAccountID(ctx context.Context, accountID string) ([]models.SurveySubmission, error)
	Create(ctx context.Context, submission *models.SurveySubmission) error
	Update(ctx context.Context, submission *models.SurveySubmission) error
	SetAssignedDoctorByAccountID(ctx context.Context, accountID, doctorID string) (int64, error)
}

type AnswerUsecase interface {
	GroupedAnswers(ctx context.Context, submissionID string) (*responses.GroupedAnswers, error)
	AppendAnswer(ctx context.Context, submissionID string, request *requests.AppendAnswer) (*responses.AnswerItem, error)
	EditAnswer(ctx context.Context, submissionID, answerID string, request *requests.EditAnswer) (*responses.AnswerItem, error)
	DiscontinueAnswer(ctx context.Context, submissionID, answerID string, request *requests.DiscontinueAnswer) (*responses.AnswerItem, error)
	AttachPrescription(ctx context.Context, submissionID, answerID string, request *requests.AttachPrescription) (*responses.AnswerItem, error)
	RemoveAnswer(ctx context.Context, submissionID, answerID string) error
}

type WorkflowUsecase interface {
	Approve(ctx context.Context, submissionID string, request *requests.ApproveSubmission) (*responses.Submission, error)
	Reject(ctx context.Context, submissionID string, request *requests.RejectSubmission) (*responses.Submission, error)
	FinishTask(ctx context.Context, submissionID string, request *requests.FinishTask) (*responses.Submission, error)
	SendMessage(ctx context.Context, submissionID string, request *requests.SendMessage) (*responses.ChatMessage, error)
}
