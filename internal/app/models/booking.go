package models

import "time"

type BookingStatus string

const (
	BookingPending       BookingStatus = "pending"
	BookingConfirmed     BookingStatus = "confirmed"
	BookingCompleted     BookingStatus = "completed"
	BookingPaymentFailed BookingStatus = "payment_failed"
	BookingCancelled     BookingStatus = "cancelled"
)

type BookingPayoutStatus string

const (
	PayoutPending   BookingPayoutStatus = "pending"
	PayoutCompleted BookingPayoutStatus = "completed"
)

type BookingPaymentType string

const (
	PaymentTypeCredits BookingPaymentType = "credits"
	PaymentTypeCash    BookingPaymentType = "cash"
	PaymentTypeCard    BookingPaymentType = "card"
	PaymentTypeFree    BookingPaymentType = "free"
)

type Booking struct {
	ID            string              `bson:"_id,omitempty" json:"id"`
	PayeeID       string              `bson:"payee_id" json:"payee_id"`
	ClassID       string              `bson:"class_id,omitempty" json:"class_id,omitempty"`
	Amount        float64             `bson:"amount" json:"amount"`
	CreditValue   float64             `bson:"credit_value" json:"credit_value"`
	AmountPaid    float64             `bson:"amount_paid,omitempty" json:"amount_paid,omitempty"`
	PaymentType   BookingPaymentType  `bson:"payment_type" json:"payment_type"`
	PaymentMethod string              `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Status        BookingStatus       `bson:"status" json:"status"`
	PayoutStatus  BookingPayoutStatus `bson:"payout_status" json:"payout_status"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// BaseAmount is what the booking contributes to its payee's gross. Credit
// bookings settle at their credit value, everything else at the cash amount.
func (b *Booking) BaseAmount() float64 {
	if b.PaymentType == PaymentTypeCredits {
		return b.CreditValue
	}
	return b.Amount
}
