package contracts

import (
	"context"
	"studiobook-service/internal/app/models"
)

type StripeAccountRepository interface {
	// Upsert creates or replaces the mirror row keyed by stripe_account_id.
	Upsert(ctx context.Context, status *models.StripeAccountStatus) error
	Deactivate(ctx context.Context, accountID string) error
	FindByAccountID(ctx context.Context, accountID string) (*models.StripeAccountStatus, error)
	FindByPayeeIDs(ctx context.Context, payeeIDs []string) (map[string]models.StripeAccountStatus, error)
}

type OnboardingSubmissionRepository interface {
	Insert(ctx context.Context, submission *models.OnboardingSubmission) (string, error)
	// SetStripeOnboardingComplete updates the mirror flag on the submission
	// keyed by stripe_account_id.
	SetStripeOnboardingComplete(ctx context.Context, accountID string, complete bool) error
	FindByAccountID(ctx context.Context, accountID string) (*models.OnboardingSubmission, error)
}
