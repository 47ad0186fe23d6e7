package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentStatus describes installment lifecycle.
type RepaymentStatus string

const (
	RepaymentStatusPending RepaymentStatus = "PENDING"
	RepaymentStatusPaid    RepaymentStatus = "PAID"
)

// ParseRepaymentStatus resolves a status by its symbolic name.
func ParseRepaymentStatus(name string) (RepaymentStatus, error) {
	switch s := RepaymentStatus(name); s {
	case RepaymentStatusPending, RepaymentStatusPaid:
		return s, nil
	default:
		return "", fmt.Errorf("unknown repayment status %q", name)
	}
}

// Repayment is one scheduled installment of a loan. Amount is what is currently owed
// while pending and what was actually paid once paid.
type Repayment struct {
	ID      int64
	LoanID  int64
	Amount  decimal.Decimal
	Status  RepaymentStatus
	DueDate time.Time
}

// RepaymentResult reports the outcome of a repayment request.
type RepaymentResult struct {
	LoanID      int64
	RepaymentID int64
	// AlreadyPaid is set when the loan or installment was settled before this request.
	AlreadyPaid bool
	LoanStatus  LoanStatus
}
