package contracts

import (
	"context"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/dto/responses"
)

// PayoutHistoryRepository writes the append-only settlement ledger. Rows are
// inserted once per attempt and never updated; the transfer record keeps the
// booking-to-transfer linkage delivered by reconciliation.
type PayoutHistoryRepository interface {
	Insert(ctx context.Context, record *models.PayoutHistory) (string, error)
	FindByPayeeID(ctx context.Context, payeeID string, page, pageSize int) ([]models.PayoutHistory, int, error)
}

type PayoutUsecase interface {
	// RunPayoutBatch aggregates every eligible booking and settles each payee
	// with one transfer. Exactly one batch may run at a time.
	RunPayoutBatch(ctx context.Context) (*responses.BatchReport, error)
	ListHistory(ctx context.Context, payeeID string, page, pageSize int) ([]responses.PayoutHistoryEntry, int, error)
}
