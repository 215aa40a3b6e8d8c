package webhooks

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type webhookUsecase struct {
	PaymentProvider         contracts.PaymentProvider
	BookingRepository       contracts.BookingRepository
	PaymentEventRepository  contracts.PaymentEventRepository
	TransferRecordRepo      contracts.TransferRecordRepository
	BankPayoutRepository    contracts.BankPayoutRepository
	StripeAccountRepository contracts.StripeAccountRepository
	OnboardingRepository    contracts.OnboardingSubmissionRepository
	Log                     *zap.Logger
}

var (
	webhookUsecaseInstance contracts.WebhookUsecase
	onceWebhookUsecase     sync.Once
)

func NewWebhookUsecase(
	paymentProvider contracts.PaymentProvider,
	bookingRepository contracts.BookingRepository,
	paymentEventRepository contracts.PaymentEventRepository,
	transferRecordRepository contracts.TransferRecordRepository,
	bankPayoutRepository contracts.BankPayoutRepository,
	stripeAccountRepository contracts.StripeAccountRepository,
	onboardingRepository contracts.OnboardingSubmissionRepository,
	logger *zap.Logger,
) contracts.WebhookUsecase {
	onceWebhookUsecase.Do(func() {
		instance := &webhookUsecase{
			PaymentProvider:         paymentProvider,
			BookingRepository:       bookingRepository,
			PaymentEventRepository:  paymentEventRepository,
			TransferRecordRepo:      transferRecordRepository,
			BankPayoutRepository:    bankPayoutRepository,
			StripeAccountRepository: stripeAccountRepository,
			OnboardingRepository:    onboardingRepository,
			Log:                     logger,
		}
		webhookUsecaseInstance = instance
	})
	return webhookUsecaseInstance
}

// HandleEvent verifies the delivery and routes it by event type. Verification
// happens before anything is written; a handler error propagates so the
// provider retries the whole delivery.
func (uc *webhookUsecase) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) error {
	requestID := utils.GetRequestID(ctx)

	event, err := uc.PaymentProvider.VerifyEvent(rawBody, signatureHeader)
	if err != nil {
		utils.LogSecurityEvent(uc.Log, "webhook_signature_verification_failed", requestID, "high")
		return err
	}

	uc.Log.Info("webhookUsecase.HandleEvent received event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)

	switch event.Type {
	case constvars.StripeEventAccountUpdated:
		return uc.handleAccountUpdated(ctx, event)
	case constvars.StripeEventAccountDeauthorized:
		return uc.handleAccountDeauthorized(ctx, event)
	case constvars.StripeEventPaymentSucceeded:
		return uc.handlePaymentSucceeded(ctx, event)
	case constvars.StripeEventPaymentFailed:
		return uc.handlePaymentFailed(ctx, event)
	case constvars.StripeEventChargeRefunded:
		return uc.handleChargeRefunded(ctx, event)
	case constvars.StripeEventChargeDisputed:
		return uc.handleChargeDisputed(ctx, event)
	case constvars.StripeEventTransferCreated:
		return uc.handleTransferCreated(ctx, event)
	case constvars.StripeEventPayoutPaid, constvars.StripeEventPayoutFailed:
		return uc.handleBankPayout(ctx, event)
	default:
		// Unknown types are acknowledged so the provider stops redelivering.
		uc.Log.Info("webhookUsecase.HandleEvent ignoring unhandled event type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
		)
		return nil
	}
}

func (uc *webhookUsecase) handleAccountUpdated(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.AccountEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	status := &models.StripeAccountStatus{
		AccountID:           payload.ID,
		BusinessName:        payload.BusinessProfile.Name,
		ChargesEnabled:      payload.ChargesEnabled,
		PayoutsEnabled:      payload.PayoutsEnabled,
		DetailsSubmitted:    payload.DetailsSubmitted,
		RequirementsPending: len(payload.Requirements.CurrentlyDue),
		DisabledReason:      payload.Requirements.DisabledReason,
		IsActive:            payload.ChargesEnabled && payload.PayoutsEnabled,
		UpdatedAt:           time.Now().UTC(),
	}
	if err := uc.StripeAccountRepository.Upsert(ctx, status); err != nil {
		return err
	}

	// Mirror the onboarding flag; the account row above is authoritative,
	// so drift here is tolerated. Ready to onboard means details submitted and
	// charges enabled; payouts may lag behind without blocking onboarding.
	complete := payload.DetailsSubmitted && payload.ChargesEnabled
	if err := uc.OnboardingRepository.SetStripeOnboardingComplete(ctx, payload.ID, complete); err != nil {
		uc.Log.Warn("webhookUsecase.HandleEvent error mirroring onboarding flag",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAccountIDKey, payload.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *webhookUsecase) handleAccountDeauthorized(ctx context.Context, event *requests.ProviderEvent) error {
	// The deauthorized payload is the application object; the connected
	// account id only exists on the event envelope.
	accountID := event.Account
	if accountID == "" {
		uc.Log.Warn("webhookUsecase.HandleEvent deauthorization without account id",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, event.ID),
		)
		return nil
	}

	if err := uc.StripeAccountRepository.Deactivate(ctx, accountID); err != nil {
		return err
	}
	if err := uc.OnboardingRepository.SetStripeOnboardingComplete(ctx, accountID, false); err != nil {
		uc.Log.Warn("webhookUsecase.HandleEvent error mirroring onboarding flag",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *webhookUsecase) handlePaymentSucceeded(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.PaymentIntentEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	record := &models.PaymentEvent{
		EventID:         constvars.StripeDerivedEventSucceededPrefix + payload.ID,
		PaymentIntentID: payload.ID,
		ChargeID:        payload.LatestCharge,
		Type:            event.Type,
		Amount:          payload.Amount,
		Currency:        payload.Currency,
		Status:          payload.Status,
		CustomerID:      payload.Customer,
	}
	inserted, err := uc.PaymentEventRepository.InsertIdempotent(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		uc.Log.Info("webhookUsecase.HandleEvent duplicate payment event, skipping",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, record.EventID),
		)
		return nil
	}

	bookingID := payload.Metadata[constvars.StripeMetadataBookingIDKey]
	if bookingID == "" {
		uc.Log.Warn("webhookUsecase.HandleEvent payment event without booking id",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, record.EventID),
		)
		return nil
	}
	return uc.BookingRepository.ConfirmPayment(ctx, bookingID, payload.PaymentMethod, utils.CentsToDollars(payload.Amount))
}

func (uc *webhookUsecase) handlePaymentFailed(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.PaymentIntentEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	record := &models.PaymentEvent{
		EventID:         constvars.StripeDerivedEventFailedPrefix + payload.ID,
		PaymentIntentID: payload.ID,
		ChargeID:        payload.LatestCharge,
		Type:            event.Type,
		Amount:          payload.Amount,
		Currency:        payload.Currency,
		Status:          payload.Status,
		CustomerID:      payload.Customer,
	}
	if payload.LastPaymentError != nil {
		record.ErrorCode = payload.LastPaymentError.Code
		record.ErrorMessage = payload.LastPaymentError.Message
	}
	inserted, err := uc.PaymentEventRepository.InsertIdempotent(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	bookingID := payload.Metadata[constvars.StripeMetadataBookingIDKey]
	if bookingID == "" {
		return nil
	}
	return uc.BookingRepository.FailPayment(ctx, bookingID)
}

func (uc *webhookUsecase) handleTransferCreated(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.TransferEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	record := &models.TransferRecord{
		TransferID:         payload.ID,
		Amount:             payload.Amount,
		Currency:           payload.Currency,
		DestinationAccount: payload.Destination,
		Description:        payload.Description,
		BookingID:          payload.Metadata[constvars.StripeMetadataBookingIDKey],
		PayeeID:            payload.Metadata[constvars.StripeMetadataPayeeIDKey],
		CreatedAt:          time.Unix(payload.Created, 0).UTC(),
	}
	// The transfer record is the authoritative booking-to-transfer linkage;
	// the payout history ledger stays append-only.
	inserted, err := uc.TransferRecordRepo.InsertIdempotent(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		uc.Log.Info("webhookUsecase.HandleEvent duplicate transfer event, skipping",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTransferIDKey, record.TransferID),
		)
	}
	return nil
}

func (uc *webhookUsecase) handleChargeRefunded(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.ChargeEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	if err := uc.PaymentEventRepository.MarkStatusByChargeID(ctx, payload.ID, constvars.PaymentEventStatusRefunded); err != nil {
		return err
	}
	uc.Log.Info("webhookUsecase.HandleEvent charge refunded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingChargeIDKey, payload.ID),
	)
	return nil
}

func (uc *webhookUsecase) handleChargeDisputed(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.DisputeEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	if err := uc.PaymentEventRepository.MarkStatusByChargeID(ctx, payload.Charge, constvars.PaymentEventStatusDisputed); err != nil {
		return err
	}
	uc.Log.Warn("webhookUsecase.HandleEvent charge disputed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingChargeIDKey, payload.Charge),
		zap.String(constvars.LoggingDisputeReasonKey, payload.Reason),
	)
	return nil
}

func (uc *webhookUsecase) handleBankPayout(ctx context.Context, event *requests.ProviderEvent) error {
	var payload requests.PayoutEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return exceptions.ErrWebhookPayloadDecode(err)
	}

	payout := &models.BankPayout{
		PayoutID:       payload.ID,
		Amount:         payload.Amount,
		Currency:       payload.Currency,
		Status:         payload.Status,
		FailureCode:    payload.FailureCode,
		FailureMessage: payload.FailureMessage,
	}
	if payload.ArrivalDate > 0 {
		payout.ArrivalDate = time.Unix(payload.ArrivalDate, 0).UTC()
	}
	return uc.BankPayoutRepository.Upsert(ctx, payout)
}
