package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
)

// UserFacade describes user directory capabilities required by handlers.
type UserFacade interface {
	RegisterUser(ctx context.Context, userName string, isAdmin bool) (*model.User, error)
	Identify(ctx context.Context, userName string) (*pkgAuth.Identity, error)
}

// LoanFacade encapsulates loan operations exposed via HTTP.
type LoanFacade interface {
	CreateLoan(ctx context.Context, identity *pkgAuth.Identity, amount int64, terms int) (*model.Loan, error)
	Loans(ctx context.Context, identity *pkgAuth.Identity) ([]model.Loan, error)
	ApproveLoan(ctx context.Context, identity *pkgAuth.Identity, loanID int64) error
}

// RepaymentFacade records installment payments.
type RepaymentFacade interface {
	Repay(ctx context.Context, identity *pkgAuth.Identity, loanID, repaymentID int64, amount decimal.NullDecimal) (*model.RepaymentResult, error)
}

// HealthChecker reports readiness of backing services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LedgerFacade aggregates the full set of operations used across handlers.
type LedgerFacade interface {
	UserFacade
	LoanFacade
	RepaymentFacade
	HealthChecker
}
