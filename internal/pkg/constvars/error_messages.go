package constvars

// Client-facing messages. Deliberately vague for anything internal.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"
	ErrClientInvalidWebhookSignature       = "Webhook signature verification failed"
	ErrClientPayoutBatchAlreadyRunning     = "A payout batch is already running, please retry later"
	ErrClientTooManyRequests               = "Too many requests, please slow down"
	ErrClientAccountNotFound               = "The requested account could not be found"
)

// Dev-facing messages, logged but not returned outside development.
const (
	ErrDevValidationFailed         = "Request validation failed"
	ErrDevCannotParseJSON          = "Failed to parse JSON request body"
	ErrDevCannotMarshalJSON        = "Failed to marshal value to JSON"
	ErrDevCannotReadRequestBody    = "Failed to read raw request body"
	ErrDevMissingRequestID         = "Request ID missing from request context"
	ErrDevInvalidAPIKey            = "Invalid or missing superadmin API key"
	ErrDevServerDeadlineExceeded   = "Deadline exceeded while waiting for downstream call"
	ErrDevURLParamMissing          = "Required URL parameter %s is missing"

	ErrDevDBFailedToFindDocument    = "MongoDB failed to find document"
	ErrDevDBFailedToInsertDocument  = "MongoDB failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "MongoDB failed to update document"
	ErrDevDBFailedToDeleteDocument  = "MongoDB failed to delete document"
	ErrDevDBFailedToIterateDocuments = "MongoDB failed to iterate documents"

	ErrDevRedisGetData       = "Redis failed to get data"
	ErrDevRedisSetData       = "Redis failed to set data"
	ErrDevRedisDeleteData    = "Redis failed to delete data"
	ErrDevRedisGetNoData     = "Redis has no data for key %s"
	ErrDevRedisUnlock        = "Redis failed to release lock"

	ErrDevStripeSignatureVerification = "Stripe webhook signature verification failed"
	ErrDevWebhookPayloadDecode        = "Failed to decode verified webhook event payload"
	ErrDevStripeTransferCreate        = "Stripe transfer creation failed"
	ErrDevStripeAccountRetrieve       = "Stripe account retrieval failed"
	ErrDevStripeAccountCreate         = "Stripe account creation failed"
	ErrDevStripeAccountLinkCreate     = "Stripe account link creation failed"

	ErrDevPayoutBatchLocked  = "Payout batch lock is held by another run"
	ErrDevTooManyRequests    = "Webhook rate limit exceeded"

	ErrDevQueuePublish  = "Failed to publish message to queue"
	ErrDevMinioPutObject = "Failed to store object in bucket %s"
)
