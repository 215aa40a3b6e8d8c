package requests

import "github.com/goccy/go-json"

// ProviderEvent is a verified webhook event, reduced to the type discriminator
// and the raw event-specific payload. Handlers decode Data by tag; unknown
// types carry the payload untouched for logging.
type ProviderEvent struct {
	ID      string
	Type    string
	Account string
	Data    json.RawMessage
}

// AccountEventPayload is the data.object of account.updated.
type AccountEventPayload struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
	Requirements     struct {
		CurrentlyDue   []string `json:"currently_due"`
		DisabledReason string   `json:"disabled_reason"`
	} `json:"requirements"`
	BusinessProfile struct {
		Name string `json:"name"`
	} `json:"business_profile"`
}

// DeauthorizedEventPayload is the data.object of account.application.deauthorized.
// Stripe delivers the application object there; the connected account id rides
// on the event envelope, which the provider copies into ProviderEvent.Account.
type DeauthorizedEventPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentIntentEventPayload is the data.object of payment_intent.succeeded and
// payment_intent.payment_failed.
type PaymentIntentEventPayload struct {
	ID               string            `json:"id"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	Customer         string            `json:"customer"`
	Metadata         map[string]string `json:"metadata"`
	PaymentMethod    string            `json:"payment_method"`
	LatestCharge     string            `json:"latest_charge"`
	LastPaymentError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// ChargeEventPayload is the data.object of charge.refunded.
type ChargeEventPayload struct {
	ID             string `json:"id"`
	PaymentIntent  string `json:"payment_intent"`
	Amount         int64  `json:"amount"`
	AmountRefunded int64  `json:"amount_refunded"`
	Currency       string `json:"currency"`
}

// DisputeEventPayload is the data.object of charge.dispute.created. The charge
// under dispute rides in the payload, not the envelope.
type DisputeEventPayload struct {
	ID       string `json:"id"`
	Charge   string `json:"charge"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

// TransferEventPayload is the data.object of transfer.created.
type TransferEventPayload struct {
	ID          string            `json:"id"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Destination string            `json:"destination"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	Created     int64             `json:"created"`
}

// PayoutEventPayload is the data.object of payout.paid and payout.failed.
type PayoutEventPayload struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
	ArrivalDate    int64  `json:"arrival_date"`
	FailureCode    string `json:"failure_code"`
	FailureMessage string `json:"failure_message"`
}
