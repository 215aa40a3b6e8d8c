package middlewares

import (
	"context"
	"crypto/subtle"
	"net/http"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const HeaderAPIKey = "x-api-key"

// RequireAPIKey guards the operational endpoints. Callers are other backend
// services, not browsers, so the key is mandatory here and there is no
// anonymous fallback.
func (m *Middlewares) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(HeaderAPIKey)

		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.InternalConfig.App.SuperadminAPIKey)) != 1 {
			requestID := utils.GetRequestID(r.Context())
			utils.LogSecurityEvent(m.Log, "invalid_api_key", requestID, "high",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
