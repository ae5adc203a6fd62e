package config

import (
	"intake-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:       utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:       utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:     utils.GetEnvString("MONGODB_DB_NAME", "intake"),
			Username:   utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:   utils.GetEnvString("MONGODB_PASSWORD", ""),
			ReplicaSet: utils.GetEnvString("MONGODB_REPLICA_SET", "rs0"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
			ActorRequestsPerSecond:     utils.GetEnvFloat("APP_ACTOR_REQUESTS_PER_SECOND", 5),
			ActorRequestBurst:          utils.GetEnvInt("APP_ACTOR_REQUEST_BURST", 20),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
			Issuer: utils.GetEnvString("JWT_ISSUER", ""),
		},
		RabbitMQ: AppRabbitMQ{
			WorkflowQueue: utils.GetEnvString("APP_RABBITMQ_WORKFLOW_QUEUE", "intake.workflow_events"),
		},
		Workflow: AppWorkflow{
			OptimisticRetryAttempts: utils.GetEnvInt("APP_OPTIMISTIC_RETRY_ATTEMPTS", 3),
			AssignmentLockTTL:       utils.GetEnvMilliseconds("APP_ASSIGNMENT_LOCK_TTL_IN_MILLISECONDS", 30*time.Second),
		},
		Vitals: AppVitals{
			HistoryWindow: utils.GetEnvMilliseconds("APP_VITALS_HISTORY_WINDOW_IN_MILLISECONDS", 2*time.Second),
		},
		Reminder: AppReminder{
			WorkerEnabled:  utils.GetEnvBool("APP_REMINDER_WORKER_ENABLED", true),
			WorkerCronSpec: reminderCronSpec(utils.GetEnvString("APP_REMINDER_WORKER_CRON_SPEC", "@daily")),
			Lookahead:      utils.GetEnvMilliseconds("APP_REMINDER_LOOKAHEAD_IN_MILLISECONDS", 0),
		},
		Catalog: AppCatalog{
			CacheTTL: utils.GetEnvMilliseconds("APP_CATALOG_CACHE_TTL_IN_MILLISECONDS", 10*time.Minute),
		},
		Intake: AppIntake{
			SubmissionQuota:  utils.GetEnvInt("APP_INTAKE_SUBMISSION_QUOTA", 5),
			SubmissionWindow: utils.GetEnvMilliseconds("APP_INTAKE_SUBMISSION_WINDOW_IN_MILLISECONDS", time.Hour),
		},
	}
}

// reminderCronSpec falls back to @daily when spec does not parse.
func reminderCronSpec(spec string) string {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return "@daily"
	}
	return spec
}
