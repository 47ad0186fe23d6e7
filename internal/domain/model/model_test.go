package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   LoanStatus
		value string
	}{
		{"pending", LoanStatusPending, "PENDING"},
		{"approved", LoanStatusApproved, "APPROVED"},
		{"paid", LoanStatusPaid, "PAID"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.value, string(tc.got))
			parsed, err := ParseLoanStatus(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.got, parsed)
		})
	}

	_, err := ParseLoanStatus("DEFAULTED")
	assert.Error(t, err, "unknown loan status")
}

func TestRepaymentStatusValues(t *testing.T) {
	cases := []struct {
		status RepaymentStatus
		value  string
	}{
		{RepaymentStatusPending, "PENDING"},
		{RepaymentStatusPaid, "PAID"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.value, string(tc.status))
		parsed, err := ParseRepaymentStatus(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.status, parsed)
	}

	_, err := ParseRepaymentStatus("APPROVED")
	assert.Error(t, err, "unknown repayment status")
}
