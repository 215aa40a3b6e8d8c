package models

import "time"

type PayoutStatus string

const (
	PayoutHistoryCompleted PayoutStatus = "completed"
	PayoutHistoryFailed    PayoutStatus = "failed"
)

// PayoutHistory is one aggregation attempt for one payee. Rows are written
// exactly once and never mutated afterwards; the collection is the audit
// ledger for everything the aggregator did.
type PayoutHistory struct {
	ID               string       `bson:"_id,omitempty" json:"id"`
	PayeeID          string       `bson:"payee_id" json:"payee_id"`
	Amount           float64      `bson:"amount" json:"amount"`
	NetAmount        float64      `bson:"net_amount" json:"net_amount"`
	StripeTransferID string       `bson:"stripe_transfer_id,omitempty" json:"stripe_transfer_id,omitempty"`
	Status           PayoutStatus `bson:"status" json:"status"`
	BookingIDs       []string     `bson:"booking_ids" json:"booking_ids"`
	ErrorMessage     string       `bson:"error_message,omitempty" json:"error_message,omitempty"`
	PayoutDate       time.Time    `bson:"payout_date" json:"payout_date"`
}

// PayoutBatch is the in-memory aggregation for one payee within a run. It is
// computed, transferred, recorded, and discarded; never persisted as such.
type PayoutBatch struct {
	PayeeID            string
	DestinationAccount string
	GrossAmount        float64
	BookingIDs         []string
}
