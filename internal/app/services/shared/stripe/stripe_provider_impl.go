package stripe

import (
	"context"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/account"
	"github.com/stripe/stripe-go/v82/accountlink"
	"github.com/stripe/stripe-go/v82/transfer"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

var (
	providerInstance contracts.PaymentProvider
	onceProvider     sync.Once
)

type stripeProvider struct {
	webhookSecret string
	Log           *zap.Logger
}

func NewStripeProvider(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentProvider {
	onceProvider.Do(func() {
		stripesdk.Key = internalConfig.Stripe.SecretKey
		providerInstance = &stripeProvider{
			webhookSecret: internalConfig.Stripe.WebhookSecret,
			Log:           logger,
		}
	})
	return providerInstance
}

func (p *stripeProvider) CreateTransfer(ctx context.Context, input *contracts.CreateTransferInput) (*contracts.TransferOutput, error) {
	params := &stripesdk.TransferParams{
		Params:      stripesdk.Params{Context: ctx},
		Amount:      stripesdk.Int64(input.AmountCents),
		Currency:    stripesdk.String(input.Currency),
		Destination: stripesdk.String(input.DestinationAccount),
	}
	for key, value := range input.Metadata {
		params.AddMetadata(key, value)
	}

	result, err := transfer.New(params)
	if err != nil {
		return nil, exceptions.ErrStripeTransferCreate(err)
	}
	return &contracts.TransferOutput{TransferID: result.ID}, nil
}

func (p *stripeProvider) RetrieveAccount(ctx context.Context, accountID string) (*contracts.AccountSnapshot, error) {
	params := &stripesdk.AccountParams{
		Params: stripesdk.Params{Context: ctx},
	}
	result, err := account.GetByID(accountID, params)
	if err != nil {
		return nil, exceptions.ErrStripeAccountRetrieve(err)
	}
	return snapshotFromAccount(result), nil
}

func (p *stripeProvider) CreateExpressAccount(ctx context.Context, input *contracts.CreateExpressAccountInput) (*contracts.AccountSnapshot, error) {
	params := &stripesdk.AccountParams{
		Params:  stripesdk.Params{Context: ctx},
		Type:    stripesdk.String(string(stripesdk.AccountTypeExpress)),
		Country: stripesdk.String(input.Country),
		Email:   stripesdk.String(input.BusinessEmail),
		BusinessProfile: &stripesdk.AccountBusinessProfileParams{
			Name:               stripesdk.String(input.BusinessName),
			SupportEmail:       stripesdk.String(input.BusinessEmail),
			ProductDescription: stripesdk.String("Fitness and wellness class bookings"),
		},
		Capabilities: &stripesdk.AccountCapabilitiesParams{
			CardPayments: &stripesdk.AccountCapabilitiesCardPaymentsParams{
				Requested: stripesdk.Bool(true),
			},
			Transfers: &stripesdk.AccountCapabilitiesTransfersParams{
				Requested: stripesdk.Bool(true),
			},
		},
	}

	result, err := account.New(params)
	if err != nil {
		return nil, exceptions.ErrStripeAccountCreate(err)
	}
	return snapshotFromAccount(result), nil
}

func (p *stripeProvider) CreateAccountLink(ctx context.Context, input *contracts.AccountLinkInput) (string, error) {
	params := &stripesdk.AccountLinkParams{
		Params:     stripesdk.Params{Context: ctx},
		Account:    stripesdk.String(input.AccountID),
		RefreshURL: stripesdk.String(input.RefreshURL),
		ReturnURL:  stripesdk.String(input.ReturnURL),
		Type:       stripesdk.String("account_onboarding"),
	}

	result, err := accountlink.New(params)
	if err != nil {
		return "", exceptions.ErrStripeAccountLinkCreate(err)
	}
	return result.URL, nil
}

func (p *stripeProvider) VerifyEvent(payload []byte, signatureHeader string) (*requests.ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return nil, exceptions.ErrStripeSignatureVerification(err)
	}

	return &requests.ProviderEvent{
		ID:      event.ID,
		Type:    string(event.Type),
		Account: event.Account,
		Data:    json.RawMessage(event.Data.Raw),
	}, nil
}

func snapshotFromAccount(acct *stripesdk.Account) *contracts.AccountSnapshot {
	snapshot := &contracts.AccountSnapshot{
		AccountID:        acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}
	if acct.BusinessProfile != nil {
		snapshot.BusinessName = acct.BusinessProfile.Name
	}
	if acct.Requirements != nil {
		snapshot.RequirementsPending = len(acct.Requirements.CurrentlyDue)
		snapshot.DisabledReason = string(acct.Requirements.DisabledReason)
	}
	return snapshot
}
