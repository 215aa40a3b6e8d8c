package contracts

import (
	"context"
	"studiobook-service/internal/app/models"
)

type PaymentEventRepository interface {
	// InsertIdempotent writes the event unless its event_id already exists.
	// Returns true when a new row was created, false on duplicate.
	InsertIdempotent(ctx context.Context, event *models.PaymentEvent) (bool, error)
	// MarkStatusByChargeID stamps a follow-up status (refunded, disputed) on
	// the payment event carrying the given charge. Re-applying the same status
	// is a no-op, so redeliveries are safe.
	MarkStatusByChargeID(ctx context.Context, chargeID, status string) error
}

type TransferRecordRepository interface {
	InsertIdempotent(ctx context.Context, record *models.TransferRecord) (bool, error)
}

type BankPayoutRepository interface {
	// Upsert creates or refreshes the status row keyed by the provider's
	// payout id.
	Upsert(ctx context.Context, payout *models.BankPayout) error
}
