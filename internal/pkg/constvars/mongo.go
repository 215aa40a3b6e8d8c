package constvars

const (
	MongoCollectionBookings              = "bookings"
	MongoCollectionPayoutHistory         = "payout_history"
	MongoCollectionPaymentEvents         = "payment_events"
	MongoCollectionTransferRecords       = "transfer_records"
	MongoCollectionBankPayouts           = "bank_payouts"
	MongoCollectionStripeAccounts        = "stripe_accounts"
	MongoCollectionOnboardingSubmissions = "onboarding_submissions"
)
