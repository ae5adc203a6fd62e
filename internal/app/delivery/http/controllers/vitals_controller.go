package controllers

import (
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VitalsController struct {
	Log           *zap.Logger
	VitalsUsecase contracts.VitalsUsecase
}

var (
	vitalsControllerInstance *VitalsController
	onceVitalsController     sync.Once
)

func NewVitalsController(logger *zap.Logger, vitalsUsecase contracts.VitalsUsecase) *VitalsController {
	onceVitalsController.Do(func() {
		vitalsControllerInstance = &VitalsController{
			Log:           logger,
			VitalsUsecase: vitalsUsecase,
		}
	})
	return vitalsControllerInstance
}

func (ctrl *VitalsController) FindByPatientID(w http.ResponseWriter, r *http.Request) {
	const method = "VitalsController.FindByPatientID"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.VitalsUsecase.FindByPatientID(ctx, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.GetVitalsSuccessMessage, response)
}

func (ctrl *VitalsController) Update(w http.ResponseWriter, r *http.Request) {
	const method = "VitalsController.Update"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.UpdateVitals)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.VitalsUsecase.Update(ctx, chi.URLParam(r, constvars.URLParamPatientID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.UpdateVitalsSuccessMessage, response)
}

func (ctrl *VitalsController) History(w http.ResponseWriter, r *http.Request) {
	const method = "VitalsController.History"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.VitalsUsecase.History(ctx, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.GetVitalsHistorySuccessMessage, response)
}
