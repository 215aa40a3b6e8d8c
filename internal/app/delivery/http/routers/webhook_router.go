package routers

import (
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRoutes(router chi.Router, middlewares *middlewares.Middlewares, internalConfig *config.InternalConfig, webhookController *controllers.WebhookController) {
	// Authenticated by signature, not API key; Stripe cannot send custom headers.
	router.Use(middlewares.WebhookRateLimit(
		internalConfig.Stripe.WebhookEventsPerSecond,
		internalConfig.Stripe.WebhookBurst,
	))

	router.Post("/stripe", webhookController.HandleStripeEvent)
}
