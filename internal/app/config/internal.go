package config

import "time"

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	JWT      AppJWT      `mapstructure:"jwt"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	Workflow AppWorkflow `mapstructure:"workflow"`
	Vitals   AppVitals   `mapstructure:"vitals"`
	Reminder AppReminder `mapstructure:"reminder"`
	Catalog  AppCatalog  `mapstructure:"catalog"`
	Intake   AppIntake   `mapstructure:"intake"`
}

type App struct {
	Env                        string  `mapstructure:"env"`
	Port                       string  `mapstructure:"port"`
	Version                    string  `mapstructure:"version"`
	Address                    string  `mapstructure:"address"`
	Timezone                   string  `mapstructure:"timezone"`
	FrontendDomain             string  `mapstructure:"frontend_domain"`
	EndpointPrefix             string  `mapstructure:"endpoint_prefix"`
	MaxRequests                int     `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int     `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int     `mapstructure:"request_body_limit_in_megabyte"`
	ActorRequestsPerSecond     float64 `mapstructure:"actor_requests_per_second"`
	ActorRequestBurst          int     `mapstructure:"actor_request_burst"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AppRabbitMQ struct {
	WorkflowQueue string `mapstructure:"workflow_queue"`
}

type AppWorkflow struct {
	// OptimisticRetryAttempts bounds how often a mutation is re-applied after a version conflict
	OptimisticRetryAttempts int `mapstructure:"optimistic_retry_attempts"`
	// AssignmentLockTTL is how long an account's doctor fan-out may hold its lock
	AssignmentLockTTL time.Duration `mapstructure:"assignment_lock_ttl"`
}

type AppVitals struct {
	// HistoryWindow clusters deltas of one actor saved this close together into one snapshot
	HistoryWindow time.Duration `mapstructure:"history_window"`
}

type AppReminder struct {
	// WorkerEnabled turns the reminder cron off on instances that only serve requests
	WorkerEnabled  bool   `mapstructure:"worker_enabled"`
	WorkerCronSpec string `mapstructure:"worker_cron_spec"`
	// Lookahead lets reminders fire this long before the due date
	Lookahead time.Duration `mapstructure:"lookahead"`
}

type AppCatalog struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AppIntake struct {
	// SubmissionQuota caps intake submissions per email within SubmissionWindow, zero disables it
	SubmissionQuota  int           `mapstructure:"submission_quota"`
	SubmissionWindow time.Duration `mapstructure:"submission_window"`
}
