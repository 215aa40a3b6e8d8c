package routers

import (
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPayoutRoutes(router chi.Router, middlewares *middlewares.Middlewares, payoutController *controllers.PayoutController) {
	router.Use(middlewares.RequireAPIKey)

	router.Post("/", payoutController.RunPayoutBatch)
	router.Get("/history/{payeeID}", payoutController.ListHistory)
}
