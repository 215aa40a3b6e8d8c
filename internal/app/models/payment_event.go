package models

import "time"

// PaymentEvent is the idempotent record of a payment-intent outcome delivered
// by webhook. EventID is a derived key (pi_succeeded_<intent>, pi_failed_<intent>)
// guarded by a unique index, so repeat delivery collapses to one row.
type PaymentEvent struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	EventID         string    `bson:"event_id" json:"event_id"`
	PaymentIntentID string    `bson:"stripe_payment_intent_id" json:"stripe_payment_intent_id"`
	ChargeID        string    `bson:"stripe_charge_id,omitempty" json:"stripe_charge_id,omitempty"`
	Type            string    `bson:"type" json:"type"`
	Amount          int64     `bson:"amount" json:"amount"`
	Currency        string    `bson:"currency" json:"currency"`
	Status          string    `bson:"status" json:"status"`
	CustomerID      string    `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	ErrorCode       string    `bson:"error_code,omitempty" json:"error_code,omitempty"`
	ErrorMessage    string    `bson:"error_message,omitempty" json:"error_message,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
