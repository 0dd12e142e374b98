package routers

import (
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, middlewares *middlewares.Middlewares, profileController *controllers.ProfileController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", profileController.GetProfile)
	router.Put("/", profileController.UpdateProfile)
	router.Post("/avatar", profileController.UploadAvatar)
}
