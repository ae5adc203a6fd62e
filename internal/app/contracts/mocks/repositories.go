package mocks

import (
	"context"
	"intake-service/internal/app/models"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, submissionID string) (*models.SurveySubmission, error) {
	args := m.Called(ctx, submissionID)
	submission, _ := args.Get(0).(*models.SurveySubmission)
	return submission, args.Error(1)
}

func (m *MockSubmissionRepository) FindByAccountID(ctx context.Context, accountID string) ([]models.SurveySubmission, error) {
	args := m.Called(ctx, accountID)
	submissions, _ := args.Get(0).([]models.SurveySubmission)
	return submissions, args.Error(1)
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.SurveySubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Update(ctx context.Context, submission *models.SurveySubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) SetAssignedDoctorByAccountID(ctx context.Context, accountID, doctorID string) (int64, error) {
	args := m.Called(ctx, accountID, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, accountID string) (*models.PatientAccount, error) {
	args := m.Called(ctx, accountID)
	account, _ := args.Get(0).(*models.PatientAccount)
	return account, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.PatientAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *models.PatientAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindDueReminders(ctx context.Context, until time.Time) ([]models.PatientAccount, error) {
	args := m.Called(ctx, until)
	accounts, _ := args.Get(0).([]models.PatientAccount)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) MarkReminderSent(ctx context.Context, accountID string, kind models.ReminderKind, dueAt, sentAt time.Time) (bool, error) {
	args := m.Called(ctx, accountID, kind, dueAt, sentAt)
	return args.Bool(0), args.Error(1)
}

type MockVitalsRepository struct {
	mock.Mock
}

func (m *MockVitalsRepository) FindByPatientID(ctx context.Context, patientID string) (*models.VitalsRecord, error) {
	args := m.Called(ctx, patientID)
	record, _ := args.Get(0).(*models.VitalsRecord)
	return record, args.Error(1)
}

func (m *MockVitalsRepository) Save(ctx context.Context, record *models.VitalsRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}
