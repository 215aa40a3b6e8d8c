package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	testCases := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole dollars", 150.00, 15000},
		{"exact cents", 127.50, 12750},
		{"half cent rounds up", 0.085, 9},
		{"below half cent rounds down", 0.084, 8},
		{"binary float artifact", 0.1 * 0.85, 9},
		{"commission on odd gross", 33.33 * 0.85, 2833},
		{"zero", 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DollarsToCents(tc.amount))
		})
	}
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, 127.50, CentsToDollars(12750))
	assert.Equal(t, 0.09, CentsToDollars(9))
	assert.Equal(t, 0.0, CentsToDollars(0))
}
