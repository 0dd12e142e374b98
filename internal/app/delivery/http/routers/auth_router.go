package routers

import (
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/signup", authController.Signup)
	router.Post("/login", authController.Login)
	router.Post("/recover", authController.RecoverPassword)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}
