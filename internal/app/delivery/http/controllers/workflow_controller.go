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

type WorkflowController struct {
	Log               *zap.Logger
	WorkflowUsecase   contracts.WorkflowUsecase
	AssignmentUsecase contracts.AssignmentUsecase
}

var (
	workflowControllerInstance *WorkflowController
	onceWorkflowController     sync.Once
)

func NewWorkflowController(logger *zap.Logger, workflowUsecase contracts.WorkflowUsecase, assignmentUsecase contracts.AssignmentUsecase) *WorkflowController {
	onceWorkflowController.Do(func() {
		workflowControllerInstance = &WorkflowController{
			Log:               logger,
			WorkflowUsecase:   workflowUsecase,
			AssignmentUsecase: assignmentUsecase,
		}
	})
	return workflowControllerInstance
}

func (ctrl *WorkflowController) Approve(w http.ResponseWriter, r *http.Request) {
	const method = "WorkflowController.Approve"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.ApproveSubmission)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.WorkflowUsecase.Approve(ctx, chi.URLParam(r, constvars.URLParamSubmissionID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.ApproveSubmissionSuccessMessage, response)
}

func (ctrl *WorkflowController) Reject(w http.ResponseWriter, r *http.Request) {
	const method = "WorkflowController.Reject"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.RejectSubmission)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.WorkflowUsecase.Reject(ctx, chi.URLParam(r, constvars.URLParamSubmissionID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.RejectSubmissionSuccessMessage, response)
}

func (ctrl *WorkflowController) FinishTask(w http.ResponseWriter, r *http.Request) {
	const method = "WorkflowController.FinishTask"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.FinishTask)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.WorkflowUsecase.FinishTask(ctx, chi.URLParam(r, constvars.URLParamSubmissionID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.FinishTaskSuccessMessage, response)
}

func (ctrl *WorkflowController) SendMessage(w http.ResponseWriter, r *http.Request) {
	const method = "WorkflowController.SendMessage"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.SendMessage)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.WorkflowUsecase.SendMessage(ctx, chi.URLParam(r, constvars.URLParamSubmissionID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusCreated, constvars.SendMessageSuccessMessage, response)
}

func (ctrl *WorkflowController) ReassignDoctor(w http.ResponseWriter, r *http.Request) {
	const method = "WorkflowController.ReassignDoctor"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.ReassignDoctor)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AssignmentUsecase.ReassignAccount(ctx, chi.URLParam(r, constvars.URLParamAccountID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.ReassignDoctorSuccessMessage, response)
}
