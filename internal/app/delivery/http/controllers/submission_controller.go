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

type SubmissionController struct {
	Log               *zap.Logger
	SubmissionUsecase contracts.SubmissionUsecase
	AnswerUsecase     contracts.AnswerUsecase
}

var (
	submissionControllerInstance *SubmissionController
	onceSubmissionController     sync.Once
)

func NewSubmissionController(logger *zap.Logger, submissionUsecase contracts.SubmissionUsecase, answerUsecase contracts.AnswerUsecase) *SubmissionController {
	onceSubmissionController.Do(func() {
		submissionControllerInstance = &SubmissionController{
			Log:               logger,
			SubmissionUsecase: submissionUsecase,
			AnswerUsecase:     answerUsecase,
		}
	})
	return submissionControllerInstance
}

func (ctrl *SubmissionController) FindByID(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.FindByID"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.SubmissionUsecase.FindByID(ctx, chi.URLParam(r, constvars.URLParamSubmissionID))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.GetSubmissionSuccessMessage, response)
}

func (ctrl *SubmissionController) FindByAccount(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.FindByAccount"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.SubmissionUsecase.FindByAccountID(ctx, chi.URLParam(r, constvars.URLParamAccountID))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.GetAccountSubmissionsSuccessMessage, response)
}

func (ctrl *SubmissionController) GroupedAnswers(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.GroupedAnswers"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AnswerUsecase.GroupedAnswers(ctx, chi.URLParam(r, constvars.URLParamSubmissionID))
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.GetAnswersSuccessMessage, response)
}

func (ctrl *SubmissionController) AppendAnswer(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.AppendAnswer"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.AppendAnswer)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AnswerUsecase.AppendAnswer(ctx, chi.URLParam(r, constvars.URLParamSubmissionID), request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusCreated, constvars.AppendAnswerSuccessMessage, response)
}

func (ctrl *SubmissionController) EditAnswer(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.EditAnswer"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.EditAnswer)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AnswerUsecase.EditAnswer(ctx,
		chi.URLParam(r, constvars.URLParamSubmissionID),
		chi.URLParam(r, constvars.URLParamAnswerID),
		request,
	)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.EditAnswerSuccessMessage, response)
}

func (ctrl *SubmissionController) DiscontinueAnswer(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.DiscontinueAnswer"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.DiscontinueAnswer)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AnswerUsecase.DiscontinueAnswer(ctx,
		chi.URLParam(r, constvars.URLParamSubmissionID),
		chi.URLParam(r, constvars.URLParamAnswerID),
		request,
	)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.DiscontinueAnswerSuccessMessage, response)
}

func (ctrl *SubmissionController) AttachPrescription(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.AttachPrescription"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}
	actor, ok := actorFromRequest(ctrl.Log, w, r, method, requestID)
	if !ok {
		return
	}

	request := new(requests.AttachPrescription)
	if !decodeAndValidate(ctrl.Log, w, r, method, requestID, request) {
		return
	}
	request.Actor = actor

	ctx, cancel := usecaseContext(r)
	defer cancel()

	response, err := ctrl.AnswerUsecase.AttachPrescription(ctx,
		chi.URLParam(r, constvars.URLParamSubmissionID),
		chi.URLParam(r, constvars.URLParamAnswerID),
		request,
	)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.AttachPrescriptionSuccessMessage, response)
}

func (ctrl *SubmissionController) RemoveAnswer(w http.ResponseWriter, r *http.Request) {
	const method = "SubmissionController.RemoveAnswer"
	requestID, ok := requireRequestID(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	ctx, cancel := usecaseContext(r)
	defer cancel()

	err := ctrl.AnswerUsecase.RemoveAnswer(ctx,
		chi.URLParam(r, constvars.URLParamSubmissionID),
		chi.URLParam(r, constvars.URLParamAnswerID),
	)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, method, requestID, err)
		return
	}
	respondSuccess(ctrl.Log, w, method, requestID, constvars.StatusOK, constvars.RemoveAnswerSuccessMessage, nil)
}
