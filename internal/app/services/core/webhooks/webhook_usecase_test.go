package webhooks

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/exceptions"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeProvider struct {
	event  *requests.ProviderEvent
	sigErr error
}

func (f *fakeProvider) VerifyEvent(payload []byte, signatureHeader string) (*requests.ProviderEvent, error) {
	if f.sigErr != nil {
		return nil, f.sigErr
	}
	return f.event, nil
}

func (f *fakeProvider) CreateTransfer(ctx context.Context, input *contracts.CreateTransferInput) (*contracts.TransferOutput, error) {
	return nil, nil
}

func (f *fakeProvider) RetrieveAccount(ctx context.Context, accountID string) (*contracts.AccountSnapshot, error) {
	return nil, nil
}

func (f *fakeProvider) CreateExpressAccount(ctx context.Context, input *contracts.CreateExpressAccountInput) (*contracts.AccountSnapshot, error) {
	return nil, nil
}

func (f *fakeProvider) CreateAccountLink(ctx context.Context, input *contracts.AccountLinkInput) (string, error) {
	return "", nil
}

type fakeBookingRepository struct {
	confirmed []string
	failed    []string
	amounts   map[string]float64
}

func (f *fakeBookingRepository) FindEligibleForPayout(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepository) MarkPayoutCompleted(ctx context.Context, bookingIDs []string) error {
	return nil
}

func (f *fakeBookingRepository) ConfirmPayment(ctx context.Context, bookingID, paymentMethod string, amountPaid float64) error {
	f.confirmed = append(f.confirmed, bookingID)
	if f.amounts == nil {
		f.amounts = map[string]float64{}
	}
	f.amounts[bookingID] = amountPaid
	return nil
}

func (f *fakeBookingRepository) FailPayment(ctx context.Context, bookingID string) error {
	f.failed = append(f.failed, bookingID)
	return nil
}

type fakePaymentEventRepository struct {
	seen    map[string]bool
	records []models.PaymentEvent
	marked  map[string]string
}

func (f *fakePaymentEventRepository) InsertIdempotent(ctx context.Context, event *models.PaymentEvent) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[event.EventID] {
		return false, nil
	}
	f.seen[event.EventID] = true
	f.records = append(f.records, *event)
	return true, nil
}

func (f *fakePaymentEventRepository) MarkStatusByChargeID(ctx context.Context, chargeID, status string) error {
	if f.marked == nil {
		f.marked = map[string]string{}
	}
	f.marked[chargeID] = status
	return nil
}

type fakeTransferRecordRepository struct {
	records []models.TransferRecord
}

func (f *fakeTransferRecordRepository) InsertIdempotent(ctx context.Context, record *models.TransferRecord) (bool, error) {
	for _, existing := range f.records {
		if existing.TransferID == record.TransferID {
			return false, nil
		}
	}
	f.records = append(f.records, *record)
	return true, nil
}

type fakeBankPayoutRepository struct {
	upserts []models.BankPayout
}

func (f *fakeBankPayoutRepository) Upsert(ctx context.Context, payout *models.BankPayout) error {
	f.upserts = append(f.upserts, *payout)
	return nil
}

type fakeStripeAccountRepository struct {
	upserts     []models.StripeAccountStatus
	deactivated []string
}

func (f *fakeStripeAccountRepository) Upsert(ctx context.Context, status *models.StripeAccountStatus) error {
	f.upserts = append(f.upserts, *status)
	return nil
}

func (f *fakeStripeAccountRepository) Deactivate(ctx context.Context, accountID string) error {
	f.deactivated = append(f.deactivated, accountID)
	return nil
}

func (f *fakeStripeAccountRepository) FindByAccountID(ctx context.Context, accountID string) (*models.StripeAccountStatus, error) {
	return nil, nil
}

func (f *fakeStripeAccountRepository) FindByPayeeIDs(ctx context.Context, payeeIDs []string) (map[string]models.StripeAccountStatus, error) {
	return nil, nil
}

type fakeOnboardingRepository struct {
	flags map[string]bool
	err   error
}

func (f *fakeOnboardingRepository) Insert(ctx context.Context, submission *models.OnboardingSubmission) (string, error) {
	return "", nil
}

func (f *fakeOnboardingRepository) SetStripeOnboardingComplete(ctx context.Context, accountID string, complete bool) error {
	if f.err != nil {
		return f.err
	}
	if f.flags == nil {
		f.flags = map[string]bool{}
	}
	f.flags[accountID] = complete
	return nil
}

func (f *fakeOnboardingRepository) FindByAccountID(ctx context.Context, accountID string) (*models.OnboardingSubmission, error) {
	return nil, nil
}

type webhookFixture struct {
	provider  *fakeProvider
	bookings  *fakeBookingRepository
	events    *fakePaymentEventRepository
	transfers *fakeTransferRecordRepository
	payouts   *fakeBankPayoutRepository
	accounts  *fakeStripeAccountRepository
	onboard   *fakeOnboardingRepository
	usecase   contracts.WebhookUsecase
}

func newWebhookFixture(event *requests.ProviderEvent, sigErr error) *webhookFixture {
	f := &webhookFixture{
		provider:  &fakeProvider{event: event, sigErr: sigErr},
		bookings:  &fakeBookingRepository{},
		events:    &fakePaymentEventRepository{},
		transfers: &fakeTransferRecordRepository{},
		payouts:   &fakeBankPayoutRepository{},
		accounts:  &fakeStripeAccountRepository{},
		onboard:   &fakeOnboardingRepository{},
	}
	f.usecase = &webhookUsecase{
		PaymentProvider:         f.provider,
		BookingRepository:       f.bookings,
		PaymentEventRepository:  f.events,
		TransferRecordRepo:      f.transfers,
		BankPayoutRepository:    f.payouts,
		StripeAccountRepository: f.accounts,
		OnboardingRepository:    f.onboard,
		Log:                     zap.NewNop(),
	}
	return f
}

func eventWithPayload(t *testing.T, eventType string, payload interface{}) *requests.ProviderEvent {
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	return &requests.ProviderEvent{
		ID:   "evt_1",
		Type: eventType,
		Data: json.RawMessage(raw),
	}
}

func TestHandleEvent(t *testing.T) {

	t.Run("Invalid signature rejects before any storage write", func(t *testing.T) {
		f := newWebhookFixture(nil, exceptions.ErrStripeSignatureVerification(assert.AnError))

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bad")

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 400, customErr.StatusCode)
		assert.Empty(t, f.events.records)
		assert.Empty(t, f.bookings.confirmed)
		assert.Empty(t, f.accounts.upserts)
	})

	t.Run("Payment succeeded confirms the booking once", func(t *testing.T) {
		event := eventWithPayload(t, "payment_intent.succeeded", map[string]interface{}{
			"id":             "pi_123",
			"amount":         5000,
			"currency":       "usd",
			"status":         "succeeded",
			"payment_method": "pm_card",
			"latest_charge":  "ch_1",
			"metadata":       map[string]string{"booking_id": "b1"},
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)

		assert.Len(t, f.events.records, 1)
		assert.Equal(t, "pi_succeeded_pi_123", f.events.records[0].EventID)
		assert.Equal(t, "ch_1", f.events.records[0].ChargeID)
		assert.Equal(t, []string{"b1"}, f.bookings.confirmed)
		assert.Equal(t, 50.00, f.bookings.amounts["b1"], "amount is converted from cents")

		// Redelivery of the same intent outcome is a no-op.
		err = f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)
		assert.Len(t, f.events.records, 1)
		assert.Len(t, f.bookings.confirmed, 1, "booking must not be confirmed twice")
	})

	t.Run("Payment failed marks the booking failed and keeps the error", func(t *testing.T) {
		event := eventWithPayload(t, "payment_intent.payment_failed", map[string]interface{}{
			"id":       "pi_456",
			"amount":   5000,
			"currency": "usd",
			"status":   "requires_payment_method",
			"metadata": map[string]string{"booking_id": "b2"},
			"last_payment_error": map[string]string{
				"code":    "card_declined",
				"message": "Your card was declined.",
			},
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Equal(t, []string{"b2"}, f.bookings.failed)
		assert.Len(t, f.events.records, 1)
		assert.Equal(t, "pi_failed_pi_456", f.events.records[0].EventID)
		assert.Equal(t, "card_declined", f.events.records[0].ErrorCode)
	})

	t.Run("Account updated refreshes the mirror and the onboarding flag", func(t *testing.T) {
		event := eventWithPayload(t, "account.updated", map[string]interface{}{
			"id":                "acct_1",
			"charges_enabled":   true,
			"payouts_enabled":   true,
			"details_submitted": true,
			"requirements": map[string]interface{}{
				"currently_due": []string{},
			},
			"business_profile": map[string]string{"name": "Flow Studio"},
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Len(t, f.accounts.upserts, 1)
		assert.Equal(t, "acct_1", f.accounts.upserts[0].AccountID)
		assert.Equal(t, "Flow Studio", f.accounts.upserts[0].BusinessName)
		assert.True(t, f.accounts.upserts[0].IsActive)
		assert.True(t, f.onboard.flags["acct_1"])
	})

	t.Run("Onboarding completes before payouts are enabled", func(t *testing.T) {
		event := eventWithPayload(t, "account.updated", map[string]interface{}{
			"id":                "acct_2",
			"charges_enabled":   true,
			"payouts_enabled":   false,
			"details_submitted": true,
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.True(t, f.onboard.flags["acct_2"], "details submitted with charges enabled completes onboarding")
		assert.False(t, f.accounts.upserts[0].IsActive, "the account is not payable until payouts are enabled")
	})

	t.Run("Onboarding mirror failure does not fail the event", func(t *testing.T) {
		event := eventWithPayload(t, "account.updated", map[string]interface{}{
			"id":              "acct_1",
			"charges_enabled": true,
			"payouts_enabled": true,
		})
		f := newWebhookFixture(event, nil)
		f.onboard.err = assert.AnError

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Len(t, f.accounts.upserts, 1, "the authoritative mirror is still written")
	})

	t.Run("Deauthorization deactivates the account from the envelope id", func(t *testing.T) {
		event := eventWithPayload(t, "account.application.deauthorized", map[string]string{
			"id":   "ca_app",
			"name": "Studiobook",
		})
		event.Account = "acct_gone"
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Equal(t, []string{"acct_gone"}, f.accounts.deactivated)
		assert.False(t, f.onboard.flags["acct_gone"])
	})

	t.Run("Transfer created records the settlement once", func(t *testing.T) {
		event := eventWithPayload(t, "transfer.created", map[string]interface{}{
			"id":          "tr_1",
			"amount":      12750,
			"currency":    "usd",
			"destination": "acct_1",
			"metadata": map[string]string{
				"booking_id":    "b1",
				"instructor_id": "payee-1",
			},
			"created": 1756300000,
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)

		assert.Len(t, f.transfers.records, 1)
		assert.Equal(t, "tr_1", f.transfers.records[0].TransferID)
		assert.Equal(t, "payee-1", f.transfers.records[0].PayeeID)
		assert.Equal(t, "b1", f.transfers.records[0].BookingID, "the transfer record carries the booking linkage")

		err = f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)
		assert.Len(t, f.transfers.records, 1, "duplicate transfer event is a no-op")
	})

	t.Run("Bank payout status upserts by payout id", func(t *testing.T) {
		event := eventWithPayload(t, "payout.failed", map[string]interface{}{
			"id":              "po_1",
			"amount":          10000,
			"currency":        "usd",
			"status":          "failed",
			"failure_code":    "account_closed",
			"failure_message": "The bank account has been closed.",
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Len(t, f.payouts.upserts, 1)
		assert.Equal(t, "po_1", f.payouts.upserts[0].PayoutID)
		assert.Equal(t, "account_closed", f.payouts.upserts[0].FailureCode)
	})

	t.Run("Charge refunded stamps the payment event record", func(t *testing.T) {
		event := eventWithPayload(t, "charge.refunded", map[string]interface{}{
			"id":              "ch_1",
			"payment_intent":  "pi_123",
			"amount":          5000,
			"amount_refunded": 5000,
			"currency":        "usd",
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)
		assert.Equal(t, "refunded", f.events.marked["ch_1"])

		// Redelivery re-applies the same status, which is harmless.
		err = f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")
		assert.NoError(t, err)
		assert.Equal(t, "refunded", f.events.marked["ch_1"])
	})

	t.Run("Dispute created stamps the disputed charge from the payload", func(t *testing.T) {
		event := eventWithPayload(t, "charge.dispute.created", map[string]interface{}{
			"id":       "dp_1",
			"charge":   "ch_2",
			"amount":   5000,
			"currency": "usd",
			"reason":   "fraudulent",
			"status":   "needs_response",
		})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Equal(t, "disputed", f.events.marked["ch_2"])
	})

	t.Run("Payload decode failure after verification answers 500", func(t *testing.T) {
		event := &requests.ProviderEvent{
			ID:   "evt_1",
			Type: "payment_intent.succeeded",
			Data: json.RawMessage(`{"amount":"not-a-number"}`),
		}
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 500, customErr.StatusCode, "the provider must retry the delivery")
		assert.Empty(t, f.events.records)
		assert.Empty(t, f.bookings.confirmed)
	})

	t.Run("Unknown event types are acknowledged untouched", func(t *testing.T) {
		event := eventWithPayload(t, "customer.created", map[string]string{"id": "cus_1"})
		f := newWebhookFixture(event, nil)

		err := f.usecase.HandleEvent(context.Background(), []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Empty(t, f.events.records)
		assert.Empty(t, f.transfers.records)
		assert.Empty(t, f.payouts.upserts)
		assert.Empty(t, f.accounts.upserts)
	})
}
