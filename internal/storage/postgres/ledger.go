package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
)

type ledger struct {
	storage *Storage
}

// WithinTransaction runs fn in a single database transaction.
func (l *ledger) WithinTransaction(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	return l.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(&ledgerTx{tx: tx})
	})
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) LockLoan(ctx context.Context, loanID int64) (*model.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans WHERE id=$1 FOR UPDATE`
	return scanLoan(t.tx.QueryRow(ctx, query, loanID))
}

func (t *ledgerTx) GetRepayment(ctx context.Context, loanID, repaymentID int64) (*model.Repayment, error) {
	const query = `SELECT ` + repaymentColumns + ` FROM repayments WHERE id=$1 AND loan_id=$2`
	return scanRepayment(t.tx.QueryRow(ctx, query, repaymentID, loanID))
}

func (t *ledgerTx) MarkRepaymentPaid(ctx context.Context, repaymentID int64, amount decimal.Decimal) error {
	const query = `UPDATE repayments SET amount=$1, status=$2 WHERE id=$3`
	tag, err := t.tx.Exec(ctx, query, amount, model.RepaymentStatusPaid, repaymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (t *ledgerTx) SumPaid(ctx context.Context, loanID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM repayments WHERE loan_id=$1 AND status=$2`
	var sum decimal.Decimal
	if err := t.tx.QueryRow(ctx, query, loanID, model.RepaymentStatusPaid).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (t *ledgerTx) CountPending(ctx context.Context, loanID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM repayments WHERE loan_id=$1 AND status=$2`
	var count int64
	if err := t.tx.QueryRow(ctx, query, loanID, model.RepaymentStatusPending).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *ledgerTx) SetPendingAmounts(ctx context.Context, loanID int64, amount decimal.Decimal) error {
	const query = `UPDATE repayments SET amount=$1 WHERE loan_id=$2 AND status=$3`
	_, err := t.tx.Exec(ctx, query, amount, loanID, model.RepaymentStatusPending)
	return err
}

func (t *ledgerTx) SetLoanStatus(ctx context.Context, loanID int64, status model.LoanStatus) error {
	const query = `UPDATE loans SET status=$1 WHERE id=$2`
	tag, err := t.tx.Exec(ctx, query, status, loanID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
