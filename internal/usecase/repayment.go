package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
	"github.com/polkiloo/loanledger/internal/pkg/lock"
)

// RepaymentUseCase records installment payments against approved loans.
type RepaymentUseCase struct {
	ledger repository.Ledger
	locker lock.Locker
	logger *slog.Logger
}

// NewRepaymentUseCase constructs RepaymentUseCase.
func NewRepaymentUseCase(ledger repository.Ledger, locker lock.Locker, logger *slog.Logger) *RepaymentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepaymentUseCase{ledger: ledger, locker: locker, logger: logger}
}

// Apply pays a single installment. The payment must cover what the installment
// currently owes; any excess reduces the remaining installments. The amount is
// checked only after the loan and installment are found and known to be payable. After the payment the
// pending installments are rebalanced and the loan is marked PAID once none is left.
func (u *RepaymentUseCase) Apply(ctx context.Context, identity *pkgAuth.Identity, loanID, repaymentID int64, paid decimal.NullDecimal) (*model.RepaymentResult, error) {
	if err := pkgAuth.Authorize(identity, pkgAuth.RoleUser); err != nil {
		return nil, err
	}

	unlock, err := u.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return nil, fmt.Errorf("lock loan %d: %w", loanID, err)
	}
	defer unlock()

	var result *model.RepaymentResult
	err = u.ledger.WithinTransaction(ctx, func(tx repository.LedgerTx) error {
		res, err := u.apply(ctx, tx, loanID, repaymentID, paid)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *RepaymentUseCase) apply(ctx context.Context, tx repository.LedgerTx, loanID, repaymentID int64, amount decimal.NullDecimal) (*model.RepaymentResult, error) {
	loan, err := tx.LockLoan(ctx, loanID)
	if err != nil {
		return nil, loanLookupError(err, loanID)
	}

	repayment, err := tx.GetRepayment(ctx, loanID, repaymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, &domainErrors.NotFoundError{Entity: "Repayment", ID: repaymentID}
		}
		return nil, err
	}

	settled := &model.RepaymentResult{LoanID: loanID, RepaymentID: repaymentID, AlreadyPaid: true, LoanStatus: loan.Status}
	switch loan.Status {
	case model.LoanStatusPending:
		return nil, domainErrors.ErrLoanNotApproved
	case model.LoanStatusPaid:
		return settled, nil
	}
	if repayment.Status == model.RepaymentStatusPaid {
		return settled, nil
	}

	if !amount.Valid {
		return nil, domainErrors.Validation("amount is required")
	}
	paid := amount.Decimal
	if !paid.IsPositive() {
		return nil, domainErrors.Validation("amount must be positive")
	}
	if paid.LessThan(repayment.Amount) {
		return nil, &domainErrors.InsufficientAmountError{Expected: repayment.Amount}
	}

	if err := tx.MarkRepaymentPaid(ctx, repaymentID, paid); err != nil {
		return nil, fmt.Errorf("mark repayment paid: %w", err)
	}
	rebalanced, err := Rebalance(ctx, tx, loan)
	if err != nil {
		return nil, err
	}
	closed, err := RefreshLoanStatus(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}

	status := loan.Status
	if closed {
		status = model.LoanStatusPaid
	}
	u.logger.InfoContext(ctx, "repayment applied",
		"loan_id", loanID,
		"repayment_id", repaymentID,
		"paid", paid.String(),
		"remaining", rebalanced.Remaining.String(),
		"pending", rebalanced.Pending,
		"share", rebalanced.Share.String(),
		"loan_status", status,
	)

	return &model.RepaymentResult{LoanID: loanID, RepaymentID: repaymentID, LoanStatus: status}, nil
}
