package middlewares

import (
	"net/http"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"

	"golang.org/x/time/rate"
)

// WebhookRateLimit bounds how fast webhook deliveries are accepted. Stripe
// retries rejected deliveries with backoff, so shedding load here is safe;
// the limit only exists to protect Mongo during redelivery storms.
func (m *Middlewares) WebhookRateLimit(eventsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(eventsPerSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
