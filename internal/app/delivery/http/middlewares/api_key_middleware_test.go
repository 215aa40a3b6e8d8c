package middlewares

import (
	"net/http"
	"net/http/httptest"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequireAPIKey(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-superadmin-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			SuperadminAPIKey: testAPIKey,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
		assert.True(t, ok, "api key auth flag should be set")
		assert.True(t, apiKeyAuth, "api key auth flag should be true")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/payouts/run", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/payouts/run", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 when the key is absent")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/payouts/run", nil)
		req.Header.Set(HeaderAPIKey, "wrong-key")

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 for a wrong key")
	})
}
