package payouts

import (
	"context"
	"sort"
	"strings"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type payoutUsecase struct {
	BookingRepository       contracts.BookingRepository
	PayoutHistoryRepository contracts.PayoutHistoryRepository
	StripeAccountRepository contracts.StripeAccountRepository
	PaymentProvider         contracts.PaymentProvider
	LockerService           contracts.LockerService
	ReportPublisher         contracts.ReportPublisher
	ReportArchive           contracts.ReportArchive
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	payoutUsecaseInstance contracts.PayoutUsecase
	oncePayoutUsecase     sync.Once
)

func NewPayoutUsecase(
	bookingRepository contracts.BookingRepository,
	payoutHistoryRepository contracts.PayoutHistoryRepository,
	stripeAccountRepository contracts.StripeAccountRepository,
	paymentProvider contracts.PaymentProvider,
	lockerService contracts.LockerService,
	reportPublisher contracts.ReportPublisher,
	reportArchive contracts.ReportArchive,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PayoutUsecase {
	oncePayoutUsecase.Do(func() {
		instance := &payoutUsecase{
			BookingRepository:       bookingRepository,
			PayoutHistoryRepository: payoutHistoryRepository,
			StripeAccountRepository: stripeAccountRepository,
			PaymentProvider:         paymentProvider,
			LockerService:           lockerService,
			ReportPublisher:         reportPublisher,
			ReportArchive:           reportArchive,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
		payoutUsecaseInstance = instance
	})
	return payoutUsecaseInstance
}

// RunPayoutBatch settles every eligible booking, one transfer per payee.
// At most one batch runs at a time; a second caller gets a conflict error
// instead of a second settlement pass.
func (uc *payoutUsecase) RunPayoutBatch(ctx context.Context) (*responses.BatchReport, error) {
	requestID := utils.GetRequestID(ctx)
	lockTTL := time.Duration(uc.InternalConfig.Payout.LockTTLInSeconds) * time.Second

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, constvars.PayoutBatchLockKey, lockTTL)
	if err != nil {
		uc.Log.Error("payoutUsecase.RunPayoutBatch error acquiring lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		uc.Log.Warn("payoutUsecase.RunPayoutBatch rejected, batch already running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrPayoutBatchAlreadyRunning(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), constvars.PayoutBatchLockKey, lockValue); err != nil {
			uc.Log.Warn("payoutUsecase.RunPayoutBatch error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	batchID := utils.GenerateBatchID()
	startedAt := time.Now().UTC()
	uc.Log.Info("payoutUsecase.RunPayoutBatch started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBatchIDKey, batchID),
	)

	bookings, err := uc.BookingRepository.FindEligibleForPayout(ctx, startedAt)
	if err != nil {
		return nil, err
	}

	batches, skipped, err := uc.aggregateByPayee(ctx, requestID, bookings)
	if err != nil {
		return nil, err
	}

	payeeIDs := make([]string, 0, len(batches))
	for payeeID := range batches {
		payeeIDs = append(payeeIDs, payeeID)
	}
	sort.Strings(payeeIDs)

	results := make([]responses.PayoutResult, 0, len(payeeIDs))
	for _, payeeID := range payeeIDs {
		results = append(results, uc.settlePayee(ctx, requestID, batches[payeeID]))
	}

	message := constvars.PayoutBatchCompleted
	if len(bookings) == 0 {
		message = constvars.PayoutBatchNothingToPayout
	}
	report := &responses.BatchReport{
		BatchID:          batchID,
		Message:          message,
		Results:          results,
		EligibleBookings: len(bookings) - skipped,
		SkippedBookings:  skipped,
		StartedAt:        startedAt.Format(time.RFC3339),
		FinishedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	uc.publishReport(ctx, requestID, report)
	return report, nil
}

// aggregateByPayee groups bookings into one pending batch per payee. Bookings
// without a usable destination account and bookings with a non-positive base
// amount are counted as skipped, not failed.
func (uc *payoutUsecase) aggregateByPayee(ctx context.Context, requestID string, bookings []models.Booking) (map[string]*models.PayoutBatch, int, error) {
	payeeSet := make(map[string]struct{})
	for _, booking := range bookings {
		payeeSet[booking.PayeeID] = struct{}{}
	}
	payeeIDs := make([]string, 0, len(payeeSet))
	for payeeID := range payeeSet {
		payeeIDs = append(payeeIDs, payeeID)
	}

	accounts, err := uc.StripeAccountRepository.FindByPayeeIDs(ctx, payeeIDs)
	if err != nil {
		return nil, 0, err
	}

	batches := make(map[string]*models.PayoutBatch)
	skipped := 0
	for _, booking := range bookings {
		account, ok := accounts[booking.PayeeID]
		if !ok || account.AccountID == "" {
			uc.Log.Warn("payoutUsecase.RunPayoutBatch skipping booking without destination account",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBookingIDKey, booking.ID),
				zap.String(constvars.LoggingPayeeIDKey, booking.PayeeID),
			)
			skipped++
			continue
		}

		base := booking.BaseAmount()
		if base <= 0 {
			uc.Log.Warn("payoutUsecase.RunPayoutBatch skipping booking with non-positive amount",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBookingIDKey, booking.ID),
			)
			skipped++
			continue
		}

		batch, ok := batches[booking.PayeeID]
		if !ok {
			batch = &models.PayoutBatch{
				PayeeID:            booking.PayeeID,
				DestinationAccount: account.AccountID,
			}
			batches[booking.PayeeID] = batch
		}
		batch.GrossAmount += base
		batch.BookingIDs = append(batch.BookingIDs, booking.ID)
	}
	return batches, skipped, nil
}

// settlePayee runs one transfer for one payee and records the outcome. A
// failed transfer writes a failed history row and leaves the bookings pending
// for the next batch; it never aborts the run.
func (uc *payoutUsecase) settlePayee(ctx context.Context, requestID string, batch *models.PayoutBatch) responses.PayoutResult {
	netCents := utils.DollarsToCents(batch.GrossAmount * (1 - uc.InternalConfig.Payout.CommissionRate))
	netAmount := utils.CentsToDollars(netCents)

	transferCtx, cancel := context.WithTimeout(ctx,
		time.Duration(uc.InternalConfig.Stripe.TransferTimeoutInSeconds)*time.Second)
	defer cancel()

	transfer, err := uc.PaymentProvider.CreateTransfer(transferCtx, &contracts.CreateTransferInput{
		AmountCents:        netCents,
		Currency:           uc.InternalConfig.Payout.Currency,
		DestinationAccount: batch.DestinationAccount,
		Metadata: map[string]string{
			constvars.StripeMetadataPayeeIDKey:    batch.PayeeID,
			constvars.StripeMetadataBookingIDsKey: strings.Join(batch.BookingIDs, ","),
		},
	})

	record := &models.PayoutHistory{
		PayeeID:    batch.PayeeID,
		Amount:     batch.GrossAmount,
		NetAmount:  netAmount,
		BookingIDs: batch.BookingIDs,
		PayoutDate: time.Now().UTC(),
	}

	if err != nil {
		uc.Log.Error("payoutUsecase.RunPayoutBatch transfer failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPayeeIDKey, batch.PayeeID),
			zap.Int64(constvars.LoggingAmountCentsKey, netCents),
			zap.Error(err),
		)
		record.Status = models.PayoutHistoryFailed
		record.ErrorMessage = err.Error()
		if _, insertErr := uc.PayoutHistoryRepository.Insert(ctx, record); insertErr != nil {
			uc.Log.Error("payoutUsecase.RunPayoutBatch error recording failed payout",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPayeeIDKey, batch.PayeeID),
				zap.Error(insertErr),
			)
		}
		return responses.PayoutResult{
			PayeeID: batch.PayeeID,
			Status:  responses.PayoutResultFailed,
			Error:   err.Error(),
		}
	}

	record.Status = models.PayoutHistoryCompleted
	record.StripeTransferID = transfer.TransferID
	if _, insertErr := uc.PayoutHistoryRepository.Insert(ctx, record); insertErr != nil {
		uc.Log.Error("payoutUsecase.RunPayoutBatch error recording completed payout",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPayeeIDKey, batch.PayeeID),
			zap.String(constvars.LoggingTransferIDKey, transfer.TransferID),
			zap.Error(insertErr),
		)
	}

	// Marking must follow a confirmed transfer; a booking marked here is never
	// picked up by a later batch.
	if err := uc.BookingRepository.MarkPayoutCompleted(ctx, batch.BookingIDs); err != nil {
		uc.Log.Error("payoutUsecase.RunPayoutBatch error marking bookings paid out",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPayeeIDKey, batch.PayeeID),
			zap.String(constvars.LoggingTransferIDKey, transfer.TransferID),
			zap.Error(err),
		)
	}

	uc.Log.Info("payoutUsecase.RunPayoutBatch payee settled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPayeeIDKey, batch.PayeeID),
		zap.String(constvars.LoggingTransferIDKey, transfer.TransferID),
		zap.Int64(constvars.LoggingAmountCentsKey, netCents),
	)
	return responses.PayoutResult{
		PayeeID:    batch.PayeeID,
		Status:     responses.PayoutResultSuccess,
		TransferID: transfer.TransferID,
	}
}

// publishReport fans the finished report out to the queue and the archive.
// Both writes are best-effort; the batch result stands regardless.
func (uc *payoutUsecase) publishReport(ctx context.Context, requestID string, report *responses.BatchReport) {
	if uc.ReportPublisher != nil {
		if err := uc.ReportPublisher.PublishBatchReport(ctx, report); err != nil {
			uc.Log.Warn("payoutUsecase.RunPayoutBatch error publishing batch report",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBatchIDKey, report.BatchID),
				zap.Error(err),
			)
		}
	}
	if uc.ReportArchive != nil {
		if err := uc.ReportArchive.ArchiveBatchReport(ctx, report); err != nil {
			uc.Log.Warn("payoutUsecase.RunPayoutBatch error archiving batch report",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBatchIDKey, report.BatchID),
				zap.Error(err),
			)
		}
	}
}

func (uc *payoutUsecase) ListHistory(ctx context.Context, payeeID string, page, pageSize int) ([]responses.PayoutHistoryEntry, int, error) {
	if pageSize <= 0 {
		pageSize = uc.InternalConfig.Payout.HistoryPageSize
	}

	records, total, err := uc.PayoutHistoryRepository.FindByPayeeID(ctx, payeeID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]responses.PayoutHistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, responses.PayoutHistoryEntry{
			ID:           record.ID,
			PayeeID:      record.PayeeID,
			Amount:       record.Amount,
			NetAmount:    record.NetAmount,
			TransferID:   record.StripeTransferID,
			Status:       string(record.Status),
			BookingIDs:   record.BookingIDs,
			ErrorMessage: record.ErrorMessage,
			PayoutDate:   record.PayoutDate.Format(time.RFC3339),
		})
	}
	return entries, total, nil
}
