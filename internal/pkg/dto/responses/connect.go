package responses

type ConnectAccountCreated struct {
	AccountID     string `json:"account_id"`
	OnboardingURL string `json:"onboarding_url"`
}

type ConnectAccountStatus struct {
	AccountID           string `json:"account_id"`
	ChargesEnabled      bool   `json:"charges_enabled"`
	PayoutsEnabled      bool   `json:"payouts_enabled"`
	DetailsSubmitted    bool   `json:"details_submitted"`
	RequirementsPending int    `json:"requirements_pending"`
	BusinessName        string `json:"business_name,omitempty"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}
