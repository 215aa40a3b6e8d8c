package routers

import (
	"fmt"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	payoutController *controllers.PayoutController,
	webhookController *controllers.WebhookController,
	connectController *controllers.ConnectController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "Stripe-Signature", "x-api-key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/payouts", func(r chi.Router) {
				attachPayoutRoutes(r, middlewares, payoutController)
			})

			r.Route("/webhooks", func(r chi.Router) {
				attachWebhookRoutes(r, middlewares, internalConfig, webhookController)
			})

			r.Route("/connect", func(r chi.Router) {
				attachConnectRoutes(r, middlewares, connectController)
			})
		})
	})
}
