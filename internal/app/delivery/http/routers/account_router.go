package routers

import (
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAccountRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrls *Controllers) {
	router.Get("/submissions", ctrls.Submission.FindByAccount)
	router.Post("/service-requests", ctrls.Intake.CreateServiceRequest)
	router.With(middlewares.RequireRoles(constvars.ActorRoleDoctor, constvars.ActorRoleAdmin)).
		Put("/doctor", ctrls.Workflow.ReassignDoctor)
}
