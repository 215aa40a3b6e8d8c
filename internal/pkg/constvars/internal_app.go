package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "isClientRequestID"
	CONTEXT_API_KEY_AUTH_KEY         contextKey = "apiKeyAuth"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&pageSize=%d"
)

// Redis key for the payout batch single-flight lock. Only one aggregation
// run may hold it at a time.
const (
	PayoutBatchLockKey = "studiobook:payouts:batch:lock"
)
