package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
)

// Rebalanced describes what Rebalance wrote.
type Rebalanced struct {
	Remaining decimal.Decimal
	Pending   int64
	Share     decimal.Decimal
}

// Rebalance spreads the unpaid part of the principal evenly over the loan's pending
// installments. A cumulative overpayment leaves pending installments owing zero.
func Rebalance(ctx context.Context, tx repository.LedgerTx, loan *model.Loan) (Rebalanced, error) {
	paid, err := tx.SumPaid(ctx, loan.ID)
	if err != nil {
		return Rebalanced{}, fmt.Errorf("sum paid repayments: %w", err)
	}
	remaining := decimal.NewFromInt(loan.Amount).Sub(paid)

	pending, err := tx.CountPending(ctx, loan.ID)
	if err != nil {
		return Rebalanced{}, fmt.Errorf("count pending repayments: %w", err)
	}
	if pending == 0 {
		return Rebalanced{Remaining: remaining}, nil
	}

	owed := remaining
	if owed.IsNegative() {
		owed = decimal.Zero
	}
	share := owed.Div(decimal.NewFromInt(pending))
	if err := tx.SetPendingAmounts(ctx, loan.ID, share); err != nil {
		return Rebalanced{}, fmt.Errorf("update pending repayments: %w", err)
	}

	return Rebalanced{Remaining: remaining, Pending: pending, Share: share}, nil
}
