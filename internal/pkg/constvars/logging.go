package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingEndpointKey     = "endpoint"
	LoggingMethodKey       = "method"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingErrorTypeKey    = "error_type"
	LoggingRequestKey      = "request"
	LoggingDataKey         = "data"
)

const (
	LoggingBatchIDKey            = "batch_id"
	LoggingPayeeIDKey            = "payee_id"
	LoggingBookingIDKey          = "booking_id"
	LoggingEventIDKey            = "event_id"
	LoggingEventTypeKey          = "event_type"
	LoggingTransferIDKey         = "transfer_id"
	LoggingPayoutIDKey           = "payout_id"
	LoggingChargeIDKey           = "charge_id"
	LoggingDisputeReasonKey      = "dispute_reason"
	LoggingAccountIDKey          = "account_id"
	LoggingAmountCentsKey        = "amount_cents"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
