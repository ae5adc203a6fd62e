package routers

import (
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSubmissionRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrls *Controllers) {
	clinician := middlewares.RequireRoles(constvars.ActorRoleDoctor, constvars.ActorRoleAdmin)

	router.Get("/", ctrls.Submission.FindByID)

	router.Route("/answers", func(r chi.Router) {
		r.Get("/", ctrls.Submission.GroupedAnswers)
		r.Post("/", ctrls.Submission.AppendAnswer)
		r.Put("/{answer_id}", ctrls.Submission.EditAnswer)
		r.Delete("/{answer_id}", ctrls.Submission.RemoveAnswer)
		r.Post("/{answer_id}/discontinue", ctrls.Submission.DiscontinueAnswer)
		r.With(clinician).Put("/{answer_id}/prescription", ctrls.Submission.AttachPrescription)
	})

	router.With(clinician).Post("/approve", ctrls.Workflow.Approve)
	router.With(clinician).Post("/reject", ctrls.Workflow.Reject)
	router.With(clinician).Post("/finish", ctrls.Workflow.FinishTask)
	router.Post("/messages", ctrls.Workflow.SendMessage)
}
