package vitals

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

const operationUpdate = "update"

var (
	vitalsUsecaseInstance contracts.VitalsUsecase
	onceVitalsUsecase     sync.Once
)

type vitalsUsecase struct {
	VitalsRepository contracts.VitalsRepository
	Ledger           *Ledger
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewVitalsUsecase(
	vitalsRepository contracts.VitalsRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.VitalsUsecase {
	onceVitalsUsecase.Do(func() {
		vitalsUsecaseInstance = newVitalsUsecase(vitalsRepository, NewLedger(), internalConfig, logger)
	})
	return vitalsUsecaseInstance
}

func newVitalsUsecase(
	vitalsRepository contracts.VitalsRepository,
	ledger *Ledger,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *vitalsUsecase {
	return &vitalsUsecase{
		VitalsRepository: vitalsRepository,
		Ledger:           ledger,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

func (uc *vitalsUsecase) FindByPatientID(ctx context.Context, patientID string) (*responses.Vitals, error) {
	record, err := uc.find(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return utils.ConvertVitalsToResponse(record), nil
}

// Update stores the submitted values and returns the deltas recorded for
// them. The first save creates the record and records no deltas. A save
// without changes still stamps updatedBy and updatedAt.
func (uc *vitalsUsecase) Update(ctx context.Context, patientID string, request *requests.UpdateVitals) (*responses.VitalsUpdate, error) {
	requestID := utils.GetRequestID(ctx)
	submitted := request.ToModel()

	var saved *models.VitalsRecord
	var deltas []models.VitalsDelta
	err := utils.RetryOnConflict(ctx, uc.InternalConfig.Workflow.OptimisticRetryAttempts, func(attempt int) error {
		current, err := uc.VitalsRepository.FindByPatientID(ctx, patientID)
		if err != nil {
			uc.Log.Error("vitalsUsecase.Update error calling VitalsRepository.FindByPatientID",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
			return err
		}

		record, changes := uc.Ledger.ApplyUpdate(patientID, current, submitted, request.Actor)
		if err := uc.VitalsRepository.Save(ctx, record); err != nil {
			if exceptions.IsKind(err, exceptions.KindConflict) {
				metrics.RecordOptimisticConflict(constvars.ResourceVitals)
				uc.Log.Warn("vitalsUsecase.Update version conflict, reloading",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingPatientIDKey, patientID),
					zap.Int(constvars.LoggingAttemptKey, attempt),
				)
				return err
			}
			uc.Log.Error("vitalsUsecase.Update error calling VitalsRepository.Save",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
			return err
		}
		saved, deltas = record, changes
		return nil
	})
	metrics.RecordLedgerMutation(constvars.LedgerVitals, operationUpdate, err)
	if err != nil {
		return nil, err
	}

	metrics.RecordVitalsDeltas(len(deltas))
	utils.LogBusinessEvent(uc.Log, "vitals_updated", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingDeltaCountKey, len(deltas)),
	)

	return &responses.VitalsUpdate{
		Vitals: *utils.ConvertVitalsToResponse(saved),
		Deltas: utils.ConvertVitalsDeltasToResponse(deltas),
	}, nil
}

func (uc *vitalsUsecase) History(ctx context.Context, patientID string) ([]responses.VitalsSnapshot, error) {
	record, err := uc.find(ctx, patientID)
	if err != nil {
		return nil, err
	}

	snapshots := ReconstructHistory(record, uc.InternalConfig.Vitals.HistoryWindow)
	uc.Log.Debug("vitalsUsecase.History reconstructed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingSnapshotCountKey, len(snapshots)),
	)
	return utils.ConvertVitalsSnapshotsToResponse(snapshots), nil
}

func (uc *vitalsUsecase) find(ctx context.Context, patientID string) (*models.VitalsRecord, error) {
	record, err := uc.VitalsRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		uc.Log.Error("vitalsUsecase.find error calling VitalsRepository.FindByPatientID",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrVitalsNotFound(patientID)
	}
	return record, nil
}
