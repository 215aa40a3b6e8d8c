package models

import "time"

// TransferRecord mirrors a Stripe transfer announced by transfer.created.
// TransferID carries a unique index; rows are created once and never deleted.
type TransferRecord struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	TransferID         string    `bson:"stripe_transfer_id" json:"stripe_transfer_id"`
	Amount             int64     `bson:"amount" json:"amount"`
	Currency           string    `bson:"currency" json:"currency"`
	DestinationAccount string    `bson:"destination_account" json:"destination_account"`
	Description        string    `bson:"description,omitempty" json:"description,omitempty"`
	BookingID          string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	PayeeID            string    `bson:"payee_id,omitempty" json:"payee_id,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// BankPayout tracks the status of a Stripe payout from a connected account's
// balance to its bank, keyed by the provider's payout id.
type BankPayout struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	PayoutID       string    `bson:"stripe_payout_id" json:"stripe_payout_id"`
	Amount         int64     `bson:"amount" json:"amount"`
	Currency       string    `bson:"currency" json:"currency"`
	Status         string    `bson:"status" json:"status"`
	ArrivalDate    time.Time `bson:"arrival_date,omitempty" json:"arrival_date,omitempty"`
	FailureCode    string    `bson:"failure_code,omitempty" json:"failure_code,omitempty"`
	FailureMessage string    `bson:"failure_message,omitempty" json:"failure_message,omitempty"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
