package routers

import (
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConnectRoutes(router chi.Router, middlewares *middlewares.Middlewares, connectController *controllers.ConnectController) {
	router.Use(middlewares.RequireAPIKey)

	router.Post("/accounts", connectController.CreateAccount)
	router.Get("/accounts/{accountID}", connectController.GetAccountStatus)
}
