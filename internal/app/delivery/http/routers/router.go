package routers

import (
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/services/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Intake     *controllers.IntakeController
	Submission *controllers.SubmissionController
	Workflow   *controllers.WorkflowController
	Vitals     *controllers.VitalsController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{internalConfig.App.FrontendDomain},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.Logging)
	router.Use(metrics.Middleware)
	router.Use(middlewares.BodyLimit)

	router.Handle("/metrics", metrics.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.With(middlewares.IPRateLimit()).Post("/intake", ctrls.Intake.Submit)

			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)
				r.Use(middlewares.ActorRateLimit())

				r.Route("/accounts/{account_id}", func(r chi.Router) {
					attachAccountRoutes(r, middlewares, ctrls)
				})

				r.Route("/submissions/{submission_id}", func(r chi.Router) {
					attachSubmissionRoutes(r, middlewares, ctrls)
				})

				r.Route("/patients/{patient_id}/vitals", func(r chi.Router) {
					attachVitalsRoutes(r, ctrls.Vitals)
				})
			})
		})
	})
}
