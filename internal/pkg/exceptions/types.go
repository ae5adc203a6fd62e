package exceptions

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
)

var (
	// Input
	ErrValidation = func(err error, clientMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, clientMessage, constvars.ErrDevValidationFailed)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrInvalidScheduleLabel = func(err error, label string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientInvalidScheduleLabel, fmt.Sprintf(constvars.ErrDevInvalidScheduleLabel, label))
	}
	ErrDuplicateAnswerItem = func(itemID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindValidation, constvars.ErrClientDuplicateAnswerItem, fmt.Sprintf(constvars.ErrDevDuplicateAnswerItem, itemID))
	}

	// Not found
	ErrAnswerItemNotFound = func(itemID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, constvars.ErrClientAnswerItemNotFound, fmt.Sprintf(constvars.ErrDevAnswerItemNotFound, itemID))
	}
	ErrSubmissionNotFound = func(submissionID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, constvars.ErrClientSubmissionNotFound, fmt.Sprintf(constvars.ErrDevSubmissionNotFound, submissionID))
	}
	ErrAccountNotFound = func(accountID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, constvars.ErrClientAccountNotFound, fmt.Sprintf(constvars.ErrDevAccountNotFound, accountID))
	}
	ErrCategoryNotFound = func(name string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, constvars.ErrClientCategoryNotFound, fmt.Sprintf(constvars.ErrDevCategoryNotFound, name))
	}
	ErrVitalsNotFound = func(patientID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, KindNotFound, constvars.ErrClientVitalsNotFound, fmt.Sprintf(constvars.ErrDevVitalsNotFound, patientID))
	}

	// Ledger rules
	ErrAnswerItemLocked = func(itemID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindLocked, constvars.ErrClientAnswerItemLocked, fmt.Sprintf(constvars.ErrDevAnswerItemLocked, itemID))
	}
	ErrAnswerItemDiscontinued = func(itemID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindLocked, constvars.ErrClientAnswerItemDiscontinued, fmt.Sprintf(constvars.ErrDevAnswerItemDiscontinued, itemID))
	}
	ErrAlreadyDiscontinued = func(itemID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindAlreadyDiscontinued, constvars.ErrClientAlreadyDiscontinued, fmt.Sprintf(constvars.ErrDevAlreadyDiscontinued, itemID))
	}

	// Workflow
	ErrIllegalTransition = func(action, status string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindIllegalTransition, constvars.ErrClientIllegalTransition, fmt.Sprintf(constvars.ErrDevIllegalTransition, action, status))
	}
	ErrCaseClosed = func(action string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindIllegalTransition, constvars.ErrClientCaseClosed, fmt.Sprintf(constvars.ErrDevIllegalTransition, action, "closed"))
	}
	ErrSyncFailure = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindSyncFailure, constvars.ErrClientSyncFailure, constvars.ErrDevSyncFailure)
	}

	// Concurrency
	ErrVersionConflict = func(resource, id string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindConflict, constvars.ErrClientConcurrentModification, fmt.Sprintf(constvars.ErrDevVersionConflict, resource, id))
	}
	ErrLockNotAcquired = func(key string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, KindConflict, constvars.ErrClientConcurrentModification, fmt.Sprintf(constvars.ErrDevLockNotAcquired, key))
	}

	// Auth / request context
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingActor = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingActor)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrForbidden = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevRoleNotAllowed)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, KindTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBDecodeDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDecodeDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBTransaction = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBTransactionFailed)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisLockNotOwned)
	}

	// RabbitMQ
	ErrRabbitMQOpenChannel = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQOpenChannel)
	}
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// Default Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, KindInternal, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
