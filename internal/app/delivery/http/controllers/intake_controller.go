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

type IntakeController struct {
	Log           *zap.Logger
	IntakeUsecase contracts.IntakeUsecase
}

var (
	intakeControllerInstance *IntakeController
	onceIntakeController     sync.Once
)

func NewIntakeController(logger *zap.Logger, intakeUsecase contracts.IntakeUsecase) *IntakeController {
	onceIntakeController.Do(func() {
		intakeControllerInstance = &IntakeController{
			Log:           logger,
			IntakeUsecase: intakeUsecase,
		}
	})
	return intakeControllerInstance
}

// Submit is public. The patient is identified by the account it creates.
func (ctrl *IntakeController) Submit(w http.ResponseWriter, r *http.Request) {
	const method = "IntakeController.Submit"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	request := new(requests.SubmitIntake)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.IntakeUsecase.Submit(ctx, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusCreated, constvars.IntakeSubmittedSuccessMessage, response)
}

func (ctrl *IntakeController) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	const method = "IntakeController.CreateServiceRequest"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.CreateServiceRequest)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.IntakeUsecase.CreateServiceRequest(ctx, chi.URLParam(r, constvars.URLParamAccountID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusCreated, constvars.ServiceRequestCreatedSuccessMessage, response)
}
