package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
)

// Ledger runs repayment processing atomically.
type Ledger interface {
	WithinTransaction(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx exposes the reads and writes performed while applying a repayment.
// Every call observes writes made earlier in the same transaction.
type LedgerTx interface {
	// LockLoan reads the loan and holds it until the transaction ends.
	LockLoan(ctx context.Context, loanID int64) (*model.Loan, error)
	GetRepayment(ctx context.Context, loanID, repaymentID int64) (*model.Repayment, error)
	MarkRepaymentPaid(ctx context.Context, repaymentID int64, amount decimal.Decimal) error
	SumPaid(ctx context.Context, loanID int64) (decimal.Decimal, error)
	CountPending(ctx context.Context, loanID int64) (int64, error)
	SetPendingAmounts(ctx context.Context, loanID int64, amount decimal.Decimal) error
	SetLoanStatus(ctx context.Context, loanID int64, status model.LoanStatus) error
}
