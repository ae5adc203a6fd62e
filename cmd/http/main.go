package main

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/delivery/http/routers"
	"intake-service/internal/app/drivers/database"
	"intake-service/internal/app/drivers/logger"
	"intake-service/internal/app/drivers/messaging"
	"intake-service/internal/app/services/core/accounts"
	"intake-service/internal/app/services/core/answers"
	"intake-service/internal/app/services/core/assignments"
	"intake-service/internal/app/services/core/categories"
	"intake-service/internal/app/services/core/reminders"
	"intake-service/internal/app/services/core/submissions"
	"intake-service/internal/app/services/core/vitals"
	"intake-service/internal/app/services/core/workflow"
	"intake-service/internal/app/services/shared/jwtmanager"
	"intake-service/internal/app/services/shared/locker"
	sharedMessaging "intake-service/internal/app/services/shared/messaging"
	"intake-service/internal/app/services/shared/ratelimiter"
	"intake-service/internal/app/services/shared/redis"
	"intake-service/internal/app/services/shared/transaction"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		zapLogger.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)

	// RabbitMQ
	if err := messaging.DeclareDurableQueue(bootstrap.RabbitMQ, cfg.RabbitMQ.WorkflowQueue); err != nil {
		return err
	}
	workflowPublisher, err := sharedMessaging.NewWorkflowPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.WorkflowQueue, log)
	if err != nil {
		return err
	}

	// Mongo
	transactor := transaction.NewMongoTransactor(bootstrap.MongoDB)
	accountRepository := accounts.NewAccountMongoRepository(bootstrap.MongoDB, dbName)
	submissionRepository := submissions.NewSubmissionMongoRepository(bootstrap.MongoDB, dbName)
	vitalsRepository := vitals.NewVitalsMongoRepository(bootstrap.MongoDB, dbName)
	categoryRepository := categories.NewCategoryMongoRepository(bootstrap.MongoDB, dbName)
	categoryCatalog := categories.NewCategoryCatalog(categoryRepository, redisRepository, cfg.Catalog.CacheTTL, log)

	// Usecases
	intakeUsecase := accounts.NewIntakeUsecase(accountRepository, submissionRepository, transactor, lockerService, workflowPublisher, resourceLimiter, cfg, log)
	submissionUsecase := submissions.NewSubmissionUsecase(submissionRepository, accountRepository, log)
	answerUsecase := answers.NewAnswerUsecase(submissionRepository, categoryCatalog, cfg, log)
	workflowUsecase := workflow.NewWorkflowUsecase(submissionRepository, accountRepository, categoryCatalog, transactor, workflowPublisher, cfg, log)
	assignmentUsecase := assignments.NewAssignmentUsecase(accountRepository, submissionRepository, transactor, lockerService, workflowPublisher, cfg, log)
	vitalsUsecase := vitals.NewVitalsUsecase(vitalsRepository, cfg, log)

	// Reminder worker
	if cfg.Reminder.WorkerEnabled {
		reminderWorker := reminders.NewWorker(log, cfg, lockerService, accountRepository, workflowPublisher)
		reminderWorker.Start(context.Background())
		bootstrap.ReminderWorkerStop = reminderWorker.Stop
	} else {
		log.Info("Reminder worker disabled")
	}

	// Middlewares
	jwtManager, err := jwtmanager.NewJWTManager(cfg, log)
	if err != nil {
		return err
	}
	middlewareInstance := middlewares.NewMiddlewares(log, jwtManager, cfg)

	routers.SetupRoutes(bootstrap.Router, cfg, middlewareInstance, &routers.Controllers{
		Intake:     controllers.NewIntakeController(log, intakeUsecase),
		Submission: controllers.NewSubmissionController(log, submissionUsecase, answerUsecase),
		Workflow:   controllers.NewWorkflowController(log, workflowUsecase, assignmentUsecase),
		Vitals:     controllers.NewVitalsController(log, vitalsUsecase),
	})
	return nil
}
