package repository

import (
	"context"

	"github.com/polkiloo/loanledger/internal/domain/model"
)

// LoanRepository describes persistence operations with loans and their schedules.
type LoanRepository interface {
	// Create stores the loan together with its schedule in one transaction.
	Create(ctx context.Context, loan model.Loan, schedule []model.Repayment) (*model.Loan, error)
	GetByID(ctx context.Context, id int64) (*model.Loan, error)
	// ListByUser returns loans of the user with repayments populated.
	ListByUser(ctx context.Context, userID int64) ([]model.Loan, error)
	UpdateStatus(ctx context.Context, id int64, status model.LoanStatus) error
}
