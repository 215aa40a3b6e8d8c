package constvars

const (
	PayoutBatchCompleted          = "Payout process completed"
	PayoutBatchNothingToPayout    = "No new bookings to payout"
	PayoutHistorySuccessfullyListed = "Successfully retrieved payout history"
	ConnectAccountCreated         = "Successfully created connected account"
	ConnectAccountRetrieved       = "Successfully retrieved connected account"
)
