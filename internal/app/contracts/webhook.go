package contracts

import "context"

type WebhookUsecase interface {
	// HandleEvent verifies and dispatches one raw webhook delivery. A signature
	// failure returns a 400-class error before any storage mutation; a handler
	// failure returns a 500-class error so the provider redelivers.
	HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) error
}
