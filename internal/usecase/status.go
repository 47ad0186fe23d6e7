package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
)

// RefreshLoanStatus marks the loan paid once no installment is pending. It never moves
// a loan out of PAID.
func RefreshLoanStatus(ctx context.Context, tx repository.LedgerTx, loanID int64) (bool, error) {
	pending, err := tx.CountPending(ctx, loanID)
	if err != nil {
		return false, fmt.Errorf("count pending repayments: %w", err)
	}
	if pending > 0 {
		return false, nil
	}
	if err := tx.SetLoanStatus(ctx, loanID, model.LoanStatusPaid); err != nil {
		return false, fmt.Errorf("mark loan paid: %w", err)
	}
	return true, nil
}
