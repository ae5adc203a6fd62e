package requests

import "intake-service/internal/app/models"

type IntakeAnswer struct {
	CategoryID   string      `json:"category_id,omitempty"`
	QuestionID   string      `json:"question_id,omitempty"`
	QuestionText string      `json:"question_text" validate:"required"`
	Answer       AnswerValue `json:"answer"`
}

type SubmitIntake struct {
	Name    string         `json:"name" validate:"required"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone,omitempty"`
	Answers []IntakeAnswer `json:"answers" validate:"dive"`
}

type CreateServiceRequest struct {
	Answers []IntakeAnswer `json:"answers" validate:"required,min=1,dive"`
	Actor   models.Actor   `json:"-"`
}
