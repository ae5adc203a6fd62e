package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
)

type VitalsUsecase interface {
	FindByPatientID(ctx context.Context, patientID string) (*responses.Vitals, error)
	Update(ctx context.Context, patientID string, request *requests.UpdateVitals) (*responses.VitalsUpdate, error)
	History(ctx context.Context, patientID string) ([]responses.VitalsSnapshot, error)
}

// VitalsRepository stores one record per patient. Save inserts a record
// with version zero and otherwise updates it against its loaded version.
type VitalsRepository interface {
	FindByPatientID(ctx context.Context, patientID string) (*models.VitalsRecord, error)
	Save(ctx context.Context, record *models.VitalsRecord) error
}
