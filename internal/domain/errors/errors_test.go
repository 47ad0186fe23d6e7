package errors

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"unauthorized", ErrUnauthorized},
		{"invalid state", ErrInvalidState},
		{"insufficient amount", ErrInsufficientAmount},
		{"validation", ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.err)
		})
	}
}

func TestLoanNotApprovedIsInvalidState(t *testing.T) {
	assert.ErrorIs(t, ErrLoanNotApproved, ErrInvalidState)
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &NotFoundError{Entity: "Loan", ID: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(5), nf.ID)
	assert.EqualError(t, nf, "Loan with ID 5 does not exist")
}

func TestInsufficientAmountError(t *testing.T) {
	err := &InsufficientAmountError{Expected: decimal.NewFromInt(1500)}
	assert.ErrorIs(t, err, ErrInsufficientAmount)
	assert.Contains(t, err.Error(), "1500")
}

func TestValidation(t *testing.T) {
	err := Validation("terms must be positive, got %d", 0)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "got 0")
}
