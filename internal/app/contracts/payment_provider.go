package contracts

import (
	"context"
	"studiobook-service/internal/pkg/dto/requests"
)

type CreateTransferInput struct {
	AmountCents        int64
	Currency           string
	DestinationAccount string
	Metadata           map[string]string
}

type TransferOutput struct {
	TransferID string
}

type AccountSnapshot struct {
	AccountID           string
	BusinessName        string
	ChargesEnabled      bool
	PayoutsEnabled      bool
	DetailsSubmitted    bool
	RequirementsPending int
	DisabledReason      string
}

type CreateExpressAccountInput struct {
	BusinessName  string
	BusinessEmail string
	Country       string
}

type AccountLinkInput struct {
	AccountID  string
	RefreshURL string
	ReturnURL  string
}

// PaymentProvider is the Stripe surface the service depends on. The provider
// is the source of truth for whether a transfer actually executed; callers
// only record what it reports.
type PaymentProvider interface {
	CreateTransfer(ctx context.Context, input *CreateTransferInput) (*TransferOutput, error)
	RetrieveAccount(ctx context.Context, accountID string) (*AccountSnapshot, error)
	CreateExpressAccount(ctx context.Context, input *CreateExpressAccountInput) (*AccountSnapshot, error)
	CreateAccountLink(ctx context.Context, input *AccountLinkInput) (string, error)
	// VerifyEvent checks the webhook signature against the raw body and parses
	// the envelope. Verification is binary; an error here means the event must
	// not be processed.
	VerifyEvent(payload []byte, signatureHeader string) (*requests.ProviderEvent, error)
}
