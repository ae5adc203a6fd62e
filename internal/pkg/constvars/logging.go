package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingEndpointKey        = "endpoint"
	LoggingMethodKey          = "method"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingErrorTypeKey       = "error_type"
	LoggingErrorKindKey       = "error_kind"
	LoggingOperationKey       = "operation"
	LoggingAttemptKey         = "attempt"
	LoggingSubmissionIDKey    = "submission_id"
	LoggingAccountIDKey       = "account_id"
	LoggingPatientIDKey       = "patient_id"
	LoggingAnswerIDKey        = "answer_id"
	LoggingDoctorIDKey        = "doctor_id"
	LoggingActorIDKey         = "actor_id"
	LoggingActorRoleKey       = "actor_role"
	LoggingStatusFromKey      = "status_from"
	LoggingStatusToKey        = "status_to"
	LoggingCategoryNameKey    = "category_name"
	LoggingDeltaCountKey      = "delta_count"
	LoggingSnapshotCountKey   = "snapshot_count"
	LoggingSubmissionCountKey = "submission_count"
	LoggingQueueNameKey       = "queue_name"
	LoggingEventTypeKey       = "event_type"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingLockExpirationKey  = "lock_expiration"
	LoggingCronSpecKey        = "cron_spec"
	LoggingReminderCountKey   = "reminder_count"
)
