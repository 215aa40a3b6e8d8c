package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// OnboardingSubmission is a studio's onboarding record. The reconciler keeps
// StripeOnboardingComplete in sync with the account mirror on a best-effort
// basis; drift between the two is accepted (non-critical mirror policy).
type OnboardingSubmission struct {
	ID                       string           `bson:"_id,omitempty" json:"id"`
	StudioID                 string           `bson:"studio_id" json:"studio_id"`
	BusinessName             string           `bson:"business_name" json:"business_name"`
	BusinessEmail            string           `bson:"business_email" json:"business_email"`
	StripeAccountID          string           `bson:"stripe_account_id,omitempty" json:"stripe_account_id,omitempty"`
	StripeOnboardingComplete bool             `bson:"stripe_onboarding_complete" json:"stripe_onboarding_complete"`
	SubmissionStatus         SubmissionStatus `bson:"submission_status" json:"submission_status"`
	SubmittedAt              time.Time        `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt                time.Time        `bson:"updated_at" json:"updated_at"`
}
