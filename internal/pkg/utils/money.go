package utils

import "math"

// DollarsToCents converts a major-unit amount to integer cents, rounding
// half-up. Stripe transfer amounts must be integer minor units.
func DollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToDollars converts integer minor units back to a major-unit amount.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
