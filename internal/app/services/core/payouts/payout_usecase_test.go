package payouts

import (
	"context"
	"fmt"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubBookingRepository struct {
	eligible []models.Booking
	marked   [][]string
}

func (s *stubBookingRepository) FindEligibleForPayout(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return s.eligible, nil
}

func (s *stubBookingRepository) MarkPayoutCompleted(ctx context.Context, bookingIDs []string) error {
	s.marked = append(s.marked, bookingIDs)
	return nil
}

func (s *stubBookingRepository) ConfirmPayment(ctx context.Context, bookingID, paymentMethod string, amountPaid float64) error {
	return nil
}

func (s *stubBookingRepository) FailPayment(ctx context.Context, bookingID string) error {
	return nil
}

type stubPayoutHistoryRepository struct {
	records []models.PayoutHistory
}

func (s *stubPayoutHistoryRepository) Insert(ctx context.Context, record *models.PayoutHistory) (string, error) {
	s.records = append(s.records, *record)
	return fmt.Sprintf("history-%d", len(s.records)), nil
}

func (s *stubPayoutHistoryRepository) FindByPayeeID(ctx context.Context, payeeID string, page, pageSize int) ([]models.PayoutHistory, int, error) {
	var out []models.PayoutHistory
	for _, record := range s.records {
		if record.PayeeID == payeeID {
			out = append(out, record)
		}
	}
	return out, len(out), nil
}

type stubStripeAccountRepository struct {
	accounts map[string]models.StripeAccountStatus
}

func (s *stubStripeAccountRepository) Upsert(ctx context.Context, status *models.StripeAccountStatus) error {
	return nil
}

func (s *stubStripeAccountRepository) Deactivate(ctx context.Context, accountID string) error {
	return nil
}

func (s *stubStripeAccountRepository) FindByAccountID(ctx context.Context, accountID string) (*models.StripeAccountStatus, error) {
	return nil, nil
}

func (s *stubStripeAccountRepository) FindByPayeeIDs(ctx context.Context, payeeIDs []string) (map[string]models.StripeAccountStatus, error) {
	return s.accounts, nil
}

type stubPaymentProvider struct {
	transfers  []*contracts.CreateTransferInput
	failPayees map[string]error
}

func (s *stubPaymentProvider) CreateTransfer(ctx context.Context, input *contracts.CreateTransferInput) (*contracts.TransferOutput, error) {
	s.transfers = append(s.transfers, input)
	if err, ok := s.failPayees[input.Metadata["instructor_id"]]; ok {
		return nil, err
	}
	return &contracts.TransferOutput{TransferID: fmt.Sprintf("tr_%d", len(s.transfers))}, nil
}

func (s *stubPaymentProvider) RetrieveAccount(ctx context.Context, accountID string) (*contracts.AccountSnapshot, error) {
	return nil, nil
}

func (s *stubPaymentProvider) CreateExpressAccount(ctx context.Context, input *contracts.CreateExpressAccountInput) (*contracts.AccountSnapshot, error) {
	return nil, nil
}

func (s *stubPaymentProvider) CreateAccountLink(ctx context.Context, input *contracts.AccountLinkInput) (string, error) {
	return "", nil
}

func (s *stubPaymentProvider) VerifyEvent(payload []byte, signatureHeader string) (*requests.ProviderEvent, error) {
	return nil, nil
}

type stubLockerService struct {
	held     bool
	unlocked bool
}

func (s *stubLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if s.held {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (s *stubLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	s.unlocked = true
	return nil
}

func testInternalConfig() *config.InternalConfig {
	cfg := &config.InternalConfig{}
	cfg.Payout.CommissionRate = 0.15
	cfg.Payout.Currency = "usd"
	cfg.Payout.LockTTLInSeconds = 300
	cfg.Payout.HistoryPageSize = 20
	cfg.Stripe.TransferTimeoutInSeconds = 15
	return cfg
}

func newTestPayoutUsecase(
	bookings *stubBookingRepository,
	history *stubPayoutHistoryRepository,
	accounts *stubStripeAccountRepository,
	provider *stubPaymentProvider,
	locker *stubLockerService,
) contracts.PayoutUsecase {
	return &payoutUsecase{
		BookingRepository:       bookings,
		PayoutHistoryRepository: history,
		StripeAccountRepository: accounts,
		PaymentProvider:         provider,
		LockerService:           locker,
		InternalConfig:          testInternalConfig(),
		Log:                     zap.NewNop(),
	}
}

func completedBooking(id, payeeID string, amount float64) models.Booking {
	return models.Booking{
		ID:           id,
		PayeeID:      payeeID,
		Amount:       amount,
		PaymentType:  models.PaymentTypeCard,
		Status:       models.BookingCompleted,
		PayoutStatus: models.PayoutPending,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}
}

func TestRunPayoutBatch(t *testing.T) {

	t.Run("One transfer per payee with commission deducted", func(t *testing.T) {
		creditBooking := completedBooking("b2", "payee-1", 0)
		creditBooking.PaymentType = models.PaymentTypeCredits
		creditBooking.CreditValue = 50.00

		bookings := &stubBookingRepository{eligible: []models.Booking{
			completedBooking("b1", "payee-1", 100.00),
			creditBooking,
		}}
		history := &stubPayoutHistoryRepository{}
		accounts := &stubStripeAccountRepository{accounts: map[string]models.StripeAccountStatus{
			"payee-1": {AccountID: "acct_1", IsActive: true},
		}}
		provider := &stubPaymentProvider{}
		locker := &stubLockerService{}

		uc := newTestPayoutUsecase(bookings, history, accounts, provider, locker)
		report, err := uc.RunPayoutBatch(context.Background())

		assert.NoError(t, err)
		assert.Len(t, provider.transfers, 1, "both bookings should settle in one transfer")
		assert.Equal(t, int64(12750), provider.transfers[0].AmountCents, "net should be 85%% of $150.00")
		assert.Equal(t, "acct_1", provider.transfers[0].DestinationAccount)
		assert.Equal(t, "b1,b2", provider.transfers[0].Metadata["booking_ids"])

		assert.Len(t, report.Results, 1)
		assert.Equal(t, responses.PayoutResultSuccess, report.Results[0].Status)
		assert.Equal(t, "tr_1", report.Results[0].TransferID)
		assert.Equal(t, 2, report.EligibleBookings)
		assert.Equal(t, 0, report.SkippedBookings)

		assert.Len(t, history.records, 1)
		assert.Equal(t, models.PayoutHistoryCompleted, history.records[0].Status)
		assert.Equal(t, 150.00, history.records[0].Amount, "history keeps the gross amount")
		assert.Equal(t, 127.50, history.records[0].NetAmount)
		assert.Equal(t, []string{"b1", "b2"}, history.records[0].BookingIDs)

		assert.Len(t, bookings.marked, 1, "bookings should be marked paid out exactly once")
		assert.Equal(t, []string{"b1", "b2"}, bookings.marked[0])
		assert.True(t, locker.unlocked, "batch lock should be released")
	})

	t.Run("Rounding is half up to the nearest cent", func(t *testing.T) {
		bookings := &stubBookingRepository{eligible: []models.Booking{
			completedBooking("b1", "payee-1", 0.10),
		}}
		accounts := &stubStripeAccountRepository{accounts: map[string]models.StripeAccountStatus{
			"payee-1": {AccountID: "acct_1"},
		}}
		provider := &stubPaymentProvider{}

		uc := newTestPayoutUsecase(bookings, &stubPayoutHistoryRepository{}, accounts, provider, &stubLockerService{})
		_, err := uc.RunPayoutBatch(context.Background())

		assert.NoError(t, err)
		assert.Len(t, provider.transfers, 1)
		assert.Equal(t, int64(9), provider.transfers[0].AmountCents, "8.5 cents rounds up to 9")
	})

	t.Run("Bookings without a destination account or amount are skipped", func(t *testing.T) {
		bookings := &stubBookingRepository{eligible: []models.Booking{
			completedBooking("b1", "payee-no-account", 100.00),
			completedBooking("b2", "payee-1", 0),
		}}
		accounts := &stubStripeAccountRepository{accounts: map[string]models.StripeAccountStatus{
			"payee-1": {AccountID: "acct_1"},
		}}
		provider := &stubPaymentProvider{}

		uc := newTestPayoutUsecase(bookings, &stubPayoutHistoryRepository{}, accounts, provider, &stubLockerService{})
		report, err := uc.RunPayoutBatch(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, provider.transfers, "skipped bookings must not trigger transfers")
		assert.Equal(t, 2, report.SkippedBookings)
		assert.Equal(t, 0, report.EligibleBookings)
	})

	t.Run("A failed transfer keeps its bookings pending and the batch going", func(t *testing.T) {
		bookings := &stubBookingRepository{eligible: []models.Booking{
			completedBooking("b1", "payee-1", 100.00),
			completedBooking("b2", "payee-2", 60.00),
		}}
		history := &stubPayoutHistoryRepository{}
		accounts := &stubStripeAccountRepository{accounts: map[string]models.StripeAccountStatus{
			"payee-1": {AccountID: "acct_1"},
			"payee-2": {AccountID: "acct_2"},
		}}
		provider := &stubPaymentProvider{failPayees: map[string]error{
			"payee-1": fmt.Errorf("insufficient platform balance"),
		}}

		uc := newTestPayoutUsecase(bookings, history, accounts, provider, &stubLockerService{})
		report, err := uc.RunPayoutBatch(context.Background())

		assert.NoError(t, err, "a per-payee failure must not fail the batch")
		assert.Len(t, report.Results, 2)

		var failed, succeeded *responses.PayoutResult
		for i := range report.Results {
			switch report.Results[i].Status {
			case responses.PayoutResultFailed:
				failed = &report.Results[i]
			case responses.PayoutResultSuccess:
				succeeded = &report.Results[i]
			}
		}
		assert.NotNil(t, failed)
		assert.NotNil(t, succeeded)
		assert.Equal(t, "payee-1", failed.PayeeID)
		assert.Contains(t, failed.Error, "insufficient platform balance")
		assert.Equal(t, "payee-2", succeeded.PayeeID)

		assert.Len(t, bookings.marked, 1, "only the successful payee's bookings are marked")
		assert.Equal(t, []string{"b2"}, bookings.marked[0])

		assert.Len(t, history.records, 2, "failures are recorded in history too")
		for _, record := range history.records {
			if record.PayeeID == "payee-1" {
				assert.Equal(t, models.PayoutHistoryFailed, record.Status)
				assert.Contains(t, record.ErrorMessage, "insufficient platform balance")
				assert.Empty(t, record.StripeTransferID)
			}
		}
	})

	t.Run("Concurrent batch is rejected with a conflict", func(t *testing.T) {
		provider := &stubPaymentProvider{}
		uc := newTestPayoutUsecase(
			&stubBookingRepository{eligible: []models.Booking{completedBooking("b1", "payee-1", 100.00)}},
			&stubPayoutHistoryRepository{},
			&stubStripeAccountRepository{},
			provider,
			&stubLockerService{held: true},
		)

		report, err := uc.RunPayoutBatch(context.Background())

		assert.Nil(t, report)
		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Empty(t, provider.transfers, "a rejected batch must not touch the provider")
	})

	t.Run("Empty batch reports nothing to pay out", func(t *testing.T) {
		uc := newTestPayoutUsecase(
			&stubBookingRepository{},
			&stubPayoutHistoryRepository{},
			&stubStripeAccountRepository{},
			&stubPaymentProvider{},
			&stubLockerService{},
		)

		report, err := uc.RunPayoutBatch(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Equal(t, 0, report.EligibleBookings)
	})
}

func TestListHistory(t *testing.T) {
	history := &stubPayoutHistoryRepository{records: []models.PayoutHistory{
		{
			ID:               "h1",
			PayeeID:          "payee-1",
			Amount:           150.00,
			NetAmount:        127.50,
			StripeTransferID: "tr_1",
			Status:           models.PayoutHistoryCompleted,
			BookingIDs:       []string{"b1", "b2"},
			PayoutDate:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{ID: "h2", PayeeID: "payee-2", Status: models.PayoutHistoryFailed},
	}}

	uc := newTestPayoutUsecase(&stubBookingRepository{}, history, &stubStripeAccountRepository{}, &stubPaymentProvider{}, &stubLockerService{})
	entries, total, err := uc.ListHistory(context.Background(), "payee-1", 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)
	assert.Equal(t, "h1", entries[0].ID)
	assert.Equal(t, 127.50, entries[0].NetAmount)
	assert.Equal(t, "tr_1", entries[0].TransferID)
	assert.Equal(t, "2026-08-01T12:00:00Z", entries[0].PayoutDate)
}
