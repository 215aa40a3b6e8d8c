package connect

import (
	"context"
	"fmt"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type connectUsecase struct {
	PaymentProvider         contracts.PaymentProvider
	StripeAccountRepository contracts.StripeAccountRepository
	OnboardingRepository    contracts.OnboardingSubmissionRepository
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	connectUsecaseInstance contracts.ConnectUsecase
	onceConnectUsecase     sync.Once
)

func NewConnectUsecase(
	paymentProvider contracts.PaymentProvider,
	stripeAccountRepository contracts.StripeAccountRepository,
	onboardingRepository contracts.OnboardingSubmissionRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConnectUsecase {
	onceConnectUsecase.Do(func() {
		instance := &connectUsecase{
			PaymentProvider:         paymentProvider,
			StripeAccountRepository: stripeAccountRepository,
			OnboardingRepository:    onboardingRepository,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
		connectUsecaseInstance = instance
	})
	return connectUsecaseInstance
}

// CreateAccount provisions an Express account for the studio and returns the
// hosted onboarding link the studio owner completes in the browser.
func (uc *connectUsecase) CreateAccount(ctx context.Context, request *requests.CreateConnectAccount) (*responses.ConnectAccountCreated, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("connectUsecase.CreateAccount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	snapshot, err := uc.PaymentProvider.CreateExpressAccount(ctx, &contracts.CreateExpressAccountInput{
		BusinessName:  request.BusinessName,
		BusinessEmail: request.BusinessEmail,
		Country:       request.Country,
	})
	if err != nil {
		uc.Log.Error("connectUsecase.CreateAccount error creating express account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	frontendBase := uc.InternalConfig.App.FrontendBaseUrl
	onboardingURL, err := uc.PaymentProvider.CreateAccountLink(ctx, &contracts.AccountLinkInput{
		AccountID:  snapshot.AccountID,
		RefreshURL: fmt.Sprintf("%s/connect/refresh", frontendBase),
		ReturnURL:  fmt.Sprintf("%s/connect/return", frontendBase),
	})
	if err != nil {
		uc.Log.Error("connectUsecase.CreateAccount error creating account link",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, snapshot.AccountID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.StripeAccountRepository.Upsert(ctx, &models.StripeAccountStatus{
		AccountID:    snapshot.AccountID,
		PayeeID:      request.StudioID,
		BusinessName: request.BusinessName,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	if _, err := uc.OnboardingRepository.Insert(ctx, &models.OnboardingSubmission{
		StudioID:         request.StudioID,
		BusinessName:     request.BusinessName,
		BusinessEmail:    request.BusinessEmail,
		StripeAccountID:  snapshot.AccountID,
		SubmissionStatus: models.SubmissionPending,
	}); err != nil {
		return nil, err
	}

	uc.Log.Info("connectUsecase.CreateAccount account provisioned",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAccountIDKey, snapshot.AccountID),
	)
	return &responses.ConnectAccountCreated{
		AccountID:     snapshot.AccountID,
		OnboardingURL: onboardingURL,
	}, nil
}

// GetAccountStatus reads the live account from the provider and refreshes the
// local mirror in passing, so a stale mirror self-heals on the next lookup.
func (uc *connectUsecase) GetAccountStatus(ctx context.Context, accountID string) (*responses.ConnectAccountStatus, error) {
	requestID := utils.GetRequestID(ctx)

	snapshot, err := uc.PaymentProvider.RetrieveAccount(ctx, accountID)
	if err != nil {
		uc.Log.Error("connectUsecase.GetAccountStatus error retrieving account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.StripeAccountRepository.Upsert(ctx, &models.StripeAccountStatus{
		AccountID:           snapshot.AccountID,
		BusinessName:        snapshot.BusinessName,
		ChargesEnabled:      snapshot.ChargesEnabled,
		PayoutsEnabled:      snapshot.PayoutsEnabled,
		DetailsSubmitted:    snapshot.DetailsSubmitted,
		RequirementsPending: snapshot.RequirementsPending,
		DisabledReason:      snapshot.DisabledReason,
		IsActive:            snapshot.ChargesEnabled && snapshot.PayoutsEnabled,
		UpdatedAt:           time.Now().UTC(),
	}); err != nil {
		uc.Log.Warn("connectUsecase.GetAccountStatus error refreshing mirror",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
	}

	return &responses.ConnectAccountStatus{
		AccountID:           snapshot.AccountID,
		ChargesEnabled:      snapshot.ChargesEnabled,
		PayoutsEnabled:      snapshot.PayoutsEnabled,
		DetailsSubmitted:    snapshot.DetailsSubmitted,
		RequirementsPending: snapshot.RequirementsPending,
		BusinessName:        snapshot.BusinessName,
	}, nil
}
