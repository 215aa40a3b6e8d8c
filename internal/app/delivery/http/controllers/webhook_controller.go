package controllers

import (
	"context"
	"io"
	"net/http"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type WebhookController struct {
	Log            *zap.Logger
	WebhookUsecase contracts.WebhookUsecase
	InternalConfig *config.InternalConfig
}

var (
	webhookControllerInstance *WebhookController
	onceWebhookController     sync.Once
)

func NewWebhookController(logger *zap.Logger, webhookUsecase contracts.WebhookUsecase, internalConfig *config.InternalConfig) *WebhookController {
	onceWebhookController.Do(func() {
		webhookControllerInstance = &WebhookController{
			Log:            logger,
			WebhookUsecase: webhookUsecase,
			InternalConfig: internalConfig,
		}
	})
	return webhookControllerInstance
}

// HandleStripeEvent handles POST /webhooks/stripe. The body must stay raw
// bytes all the way to signature verification; decoding it first would break
// the signed payload.
func (ctrl *WebhookController) HandleStripeEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	bodyLimit := int64(ctrl.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, bodyLimit))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadRequestBody(err))
		return
	}
	defer r.Body.Close()

	signatureHeader := r.Header.Get(constvars.HeaderStripeSignature)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := ctrl.WebhookUsecase.HandleEvent(ctx, rawBody, signatureHeader); err != nil {
		ctrl.Log.Error("Failed to process webhook event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		// Non-2xx makes Stripe redeliver. Signature failures answer 400 so a
		// forged delivery is not retried forever; handler errors answer 500.
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildRawJSONResponse(w, constvars.StatusOK, responses.WebhookAck{Received: true})
}
