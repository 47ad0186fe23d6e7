package model

import (
	"fmt"
	"time"
)

// LoanStatus describes loan lifecycle.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusPaid     LoanStatus = "PAID"
)

// ParseLoanStatus resolves a status by its symbolic name.
func ParseLoanStatus(name string) (LoanStatus, error) {
	switch s := LoanStatus(name); s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusPaid:
		return s, nil
	default:
		return "", fmt.Errorf("unknown loan status %q", name)
	}
}

// Loan is a principal borrowed by a user and repaid over Terms weekly installments.
type Loan struct {
	ID          int64
	UserID      int64
	Amount      int64
	Terms       int
	CreatedDate time.Time
	Status      LoanStatus
	Repayments  []Repayment
}
