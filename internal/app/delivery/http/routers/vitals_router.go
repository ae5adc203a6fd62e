package routers

import (
	"intake-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachVitalsRoutes(router chi.Router, vitalsController *controllers.VitalsController) {
	router.Get("/", vitalsController.FindByPatientID)
	router.Put("/", vitalsController.Update)
	router.Get("/history", vitalsController.History)
}
