package routers

import (
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"
	"clinicroom-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Use(middlewares.Authenticate)

	router.Route(fmt.Sprintf("/{%s}/draft", constvars.URLParamClinicID), func(r chi.Router) {
		r.Get("/", bookingController.GetDraft)
		r.Delete("/", bookingController.DiscardDraft)
		r.Put("/date", bookingController.SetDate)
		r.Put("/notes", bookingController.SetNotes)
		r.Put("/terms", bookingController.SetTermsAccepted)
		r.Post(fmt.Sprintf("/times/{%s}", constvars.URLParamTime), bookingController.ToggleTime)
		r.Post("/submit", bookingController.Submit)
	})
}
