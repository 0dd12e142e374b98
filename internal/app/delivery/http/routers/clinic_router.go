package routers

import (
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"
	"clinicroom-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachClinicRoutes(router chi.Router, middlewares *middlewares.Middlewares, clinicController *controllers.ClinicController, appointmentController *controllers.AppointmentController) {
	router.Get("/", clinicController.Search)
	router.Route(fmt.Sprintf("/{%s}", constvars.URLParamClinicID), func(r chi.Router) {
		r.Get("/", clinicController.FindByID)
		r.Get("/availability", clinicController.GetAvailability)
		r.Get("/availability-windows", clinicController.FindAvailabilityWindows)
		r.With(middlewares.Authenticate).Get("/appointments/stats", appointmentController.ClinicStats)
	})
}
