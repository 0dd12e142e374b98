package routers

import (
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"
	"clinicroom-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.Get("/stats", appointmentController.Stats)
	router.Get("/mine", appointmentController.FindMine)
	router.Patch(fmt.Sprintf("/{%s}/status", constvars.URLParamAppointmentID), appointmentController.UpdateStatus)
}
