package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
	"github.com/polkiloo/loanledger/internal/usecase"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LedgerFacade exposes use cases to the HTTP layer.
type LedgerFacade struct {
	users      *usecase.UserUseCase
	loans      *usecase.LoanUseCase
	repayments *usecase.RepaymentUseCase
	health     HealthChecker
}

func NewLedgerFacade(users *usecase.UserUseCase, loans *usecase.LoanUseCase, repayments *usecase.RepaymentUseCase, health HealthChecker) *LedgerFacade {
	return &LedgerFacade{users: users, loans: loans, repayments: repayments, health: health}
}

func (f *LedgerFacade) RegisterUser(ctx context.Context, userName string, isAdmin bool) (*model.User, error) {
	return f.users.Register(ctx, userName, isAdmin)
}

func (f *LedgerFacade) Identify(ctx context.Context, userName string) (*pkgAuth.Identity, error) {
	return f.users.Identify(ctx, userName)
}

func (f *LedgerFacade) CreateLoan(ctx context.Context, identity *pkgAuth.Identity, amount int64, terms int) (*model.Loan, error) {
	return f.loans.Create(ctx, identity, amount, terms)
}

func (f *LedgerFacade) Loans(ctx context.Context, identity *pkgAuth.Identity) ([]model.Loan, error) {
	return f.loans.List(ctx, identity)
}

func (f *LedgerFacade) ApproveLoan(ctx context.Context, identity *pkgAuth.Identity, loanID int64) error {
	return f.loans.Approve(ctx, identity, loanID)
}

func (f *LedgerFacade) Repay(ctx context.Context, identity *pkgAuth.Identity, loanID, repaymentID int64, amount decimal.NullDecimal) (*model.RepaymentResult, error) {
	return f.repayments.Apply(ctx, identity, loanID, repaymentID, amount)
}

// HealthCheck reports whether the ledger store is reachable.
func (f *LedgerFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
