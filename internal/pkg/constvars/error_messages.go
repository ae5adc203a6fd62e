package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"oneof":          "must be one of %s",
	"actor_role":     "must be a known staff role",
	"schedule_label": "must look like '2 weeks', '10 days' or '1 month'",
}

// TagsWithParams lists validation tags whose message embeds the tag param
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientQuestionTextRequired          = "question text is required"
	ErrClientDiscontinueReasonRequired     = "a reason is required to discontinue an item"
	ErrClientMedicationRequired            = "clinical medication is required"
	ErrClientMessageTextRequired           = "message text is required"
	ErrClientAnswerItemNotFound            = "answer item not found"
	ErrClientSubmissionNotFound            = "submission not found"
	ErrClientAccountNotFound               = "patient account not found"
	ErrClientCategoryNotFound              = "category not found"
	ErrClientVitalsNotFound                = "vitals record not found"
	ErrClientAnswerItemLocked              = "this item is locked and can no longer be changed"
	ErrClientAnswerItemDiscontinued        = "this item is discontinued and can no longer be changed"
	ErrClientAlreadyDiscontinued           = "this item is already discontinued"
	ErrClientIllegalTransition             = "this action is not allowed in the current case status"
	ErrClientCaseClosed                    = "this case is closed"
	ErrClientSyncFailure                   = "failed to update the doctor assignment, nothing was changed"
	ErrClientConcurrentModification        = "the record was changed by someone else, please reload and try again"
	ErrClientDuplicateAnswerItem           = "an item with this id already exists"
	ErrClientInvalidScheduleLabel          = "schedule label is not recognised"
	ErrClientPrescriptionMedicationMissing = "prescription medication is required"
	ErrClientDoctorIDRequired              = "doctor id is required"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevServerProcess               = "server failed to process the request"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevMissingRequestID            = "request id missing from context"
	ErrDevMissingActor                = "actor missing from context"
	ErrDevAuthTokenMissing            = "token missing"
	ErrDevAuthTokenInvalidOrExpired   = "token invalid or expired"
	ErrDevAuthSigningMethod           = "unexpected signing method"
	ErrDevRoleNotAllowed              = "actor role not allowed"
	ErrDevAnswerItemNotFound          = "answer item %s not found"
	ErrDevSubmissionNotFound          = "submission %s not found"
	ErrDevAccountNotFound             = "account %s not found"
	ErrDevCategoryNotFound            = "category %q not found"
	ErrDevVitalsNotFound              = "vitals for patient %s not found"
	ErrDevAnswerItemLocked            = "answer item %s is locked"
	ErrDevAnswerItemDiscontinued      = "answer item %s is discontinued"
	ErrDevAlreadyDiscontinued         = "answer item %s already discontinued"
	ErrDevIllegalTransition           = "cannot %s a submission in status %s"
	ErrDevSyncFailure                 = "doctor assignment sync failed"
	ErrDevVersionConflict             = "%s %s version conflict"
	ErrDevDuplicateAnswerItem         = "answer item %s already exists"
	ErrDevInvalidScheduleLabel        = "invalid schedule label %q"
	ErrDevLockNotAcquired             = "lock %s not acquired"
	ErrDevDBFailedToFindDocument      = "failed to find document"
	ErrDevDBFailedToInsertDocument    = "failed to insert document"
	ErrDevDBFailedToUpdateDocument    = "failed to update document"
	ErrDevDBFailedToDecodeDocument    = "failed to decode document"
	ErrDevDBFailedToIterateDocuments  = "failed to iterate documents"
	ErrDevDBTransactionFailed         = "transaction failed"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data to redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisLockNotOwned           = "lock not owned by this client"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue %s"
	ErrDevRabbitMQOpenChannel         = "failed to open rabbitmq channel"
	ErrDevPrescriptionMedicationBlank = "prescription medication blank"
)
