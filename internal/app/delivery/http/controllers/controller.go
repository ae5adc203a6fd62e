package controllers

import (
	"context"
	"errors"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

// requireRequestID reads the id set by RequestIDMiddleware and writes the error
// response itself when it is missing.
func requireRequestID(log *zap.Logger, w http.ResponseWriter, r *http.Request, method string) (string, bool) {
	id, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || id == "" {
		log.Error(method + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	log.Info(method+" called", zap.String(constvars.LoggingRequestIDKey, id))
	return id, true
}

func actorFromRequest(log *zap.Logger, w http.ResponseWriter, r *http.Request, method, requestID string) (models.Actor, bool) {
	actor, ok := utils.GetActor(r.Context())
	if !ok {
		log.Error(method+" actor not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingActor(nil))
		return models.Actor{}, false
	}
	return actor, true
}

// decodeAndValidate decodes the JSON body into request and runs the struct
// validators on it. An empty body decodes as an empty object.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, method, requestID string, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		log.Error(method+" error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	if err := utils.ValidateStruct(request); err != nil {
		log.Error(method+" validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func usecaseContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), usecaseTimeout)
}

func respondUsecaseError(log *zap.Logger, w http.ResponseWriter, method, requestID string, err error) {
	log.Error(method+" error from usecase",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func respondSuccess(log *zap.Logger, w http.ResponseWriter, method, requestID string, code int, message string, data interface{}) {
	log.Info(method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, code, message, data)
}
