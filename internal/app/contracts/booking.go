package contracts

import (
	"context"
	"studiobook-service/internal/app/models"
	"time"
)

type BookingRepository interface {
	// FindEligibleForPayout returns bookings with status completed, payout
	// status pending, and created_at at or before the cutoff.
	FindEligibleForPayout(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	MarkPayoutCompleted(ctx context.Context, bookingIDs []string) error
	// ConfirmPayment flips a pending booking to confirmed and records how it
	// was paid. It is a no-op when the booking is not pending.
	ConfirmPayment(ctx context.Context, bookingID, paymentMethod string, amountPaid float64) error
	// FailPayment flips a pending booking to payment_failed. No-op when the
	// booking is not pending.
	FailPayment(ctx context.Context, bookingID string) error
}
