package models

import "time"

// StripeAccountStatus is the local mirror of a payee's connected account,
// refreshed by account.updated webhooks and connect status lookups.
type StripeAccountStatus struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	AccountID           string    `bson:"stripe_account_id" json:"stripe_account_id"`
	PayeeID             string    `bson:"payee_id,omitempty" json:"payee_id,omitempty"`
	BusinessName        string    `bson:"business_name,omitempty" json:"business_name,omitempty"`
	ChargesEnabled      bool      `bson:"charges_enabled" json:"charges_enabled"`
	PayoutsEnabled      bool      `bson:"payouts_enabled" json:"payouts_enabled"`
	DetailsSubmitted    bool      `bson:"details_submitted" json:"details_submitted"`
	RequirementsPending int       `bson:"requirements_pending" json:"requirements_pending"`
	DisabledReason      string    `bson:"disabled_reason,omitempty" json:"disabled_reason,omitempty"`
	IsActive            bool      `bson:"is_active" json:"is_active"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
