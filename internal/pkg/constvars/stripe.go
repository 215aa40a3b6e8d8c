package constvars

// Stripe webhook event types the reconciler dispatches on. Anything else is
// acknowledged and ignored.
const (
	StripeEventAccountUpdated      = "account.updated"
	StripeEventAccountDeauthorized = "account.application.deauthorized"
	StripeEventPaymentSucceeded    = "payment_intent.succeeded"
	StripeEventPaymentFailed       = "payment_intent.payment_failed"
	StripeEventChargeRefunded      = "charge.refunded"
	StripeEventChargeDisputed      = "charge.dispute.created"
	StripeEventTransferCreated     = "transfer.created"
	StripeEventPayoutPaid          = "payout.paid"
	StripeEventPayoutFailed        = "payout.failed"
)

// Derived idempotency key prefixes. Payment events are keyed per intent, not
// per provider event id, so re-delivery of the same intent's outcome collapses
// to one row.
const (
	StripeDerivedEventSucceededPrefix = "pi_succeeded_"
	StripeDerivedEventFailedPrefix    = "pi_failed_"
)

const (
	StripeMetadataPayeeIDKey    = "instructor_id"
	StripeMetadataBookingIDsKey = "booking_ids"
	StripeMetadataBookingIDKey  = "booking_id"
)

const (
	StripeDefaultCurrency = "usd"
)

// Statuses stamped onto a payment event record by charge-level follow-ups.
const (
	PaymentEventStatusRefunded = "refunded"
	PaymentEventStatusDisputed = "disputed"
)
