package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
)

// UserFacadeStub provides controllable behaviour for user endpoints.
type UserFacadeStub struct {
	RegisterFn func(context.Context, string, bool) (*model.User, error)
	IdentifyFn func(context.Context, string) (*pkgAuth.Identity, error)
}

// RegisterUser delegates to provided function or echoes the input.
func (s UserFacadeStub) RegisterUser(ctx context.Context, userName string, isAdmin bool) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, userName, isAdmin)
	}
	return &model.User{ID: 1, UserName: userName, IsAdmin: isAdmin}, nil
}

// Identify resolves a name to an identity. Without override every name maps to a
// regular user with ID 1, and "admin" maps to an administrator with ID 2.
func (s UserFacadeStub) Identify(ctx context.Context, userName string) (*pkgAuth.Identity, error) {
	if s.IdentifyFn != nil {
		return s.IdentifyFn(ctx, userName)
	}
	switch userName {
	case "":
		return nil, nil
	case "admin":
		return &pkgAuth.Identity{UserID: 2, UserName: userName, Admin: true}, nil
	default:
		return &pkgAuth.Identity{UserID: 1, UserName: userName}, nil
	}
}

// LoanFacadeStub simulates loan operations.
type LoanFacadeStub struct {
	CreateFn  func(context.Context, *pkgAuth.Identity, int64, int) (*model.Loan, error)
	LoansFn   func(context.Context, *pkgAuth.Identity) ([]model.Loan, error)
	ApproveFn func(context.Context, *pkgAuth.Identity, int64) error
}

// CreateLoan returns a loan with ID 1 unless overridden.
func (s LoanFacadeStub) CreateLoan(ctx context.Context, identity *pkgAuth.Identity, amount int64, terms int) (*model.Loan, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, identity, amount, terms)
	}
	return &model.Loan{ID: 1, Amount: amount, Terms: terms, Status: model.LoanStatusPending}, nil
}

// Loans returns configured loans.
func (s LoanFacadeStub) Loans(ctx context.Context, identity *pkgAuth.Identity) ([]model.Loan, error) {
	if s.LoansFn != nil {
		return s.LoansFn(ctx, identity)
	}
	return nil, nil
}

// ApproveLoan executes configured approval handler.
func (s LoanFacadeStub) ApproveLoan(ctx context.Context, identity *pkgAuth.Identity, loanID int64) error {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, identity, loanID)
	}
	return nil
}

// RepaymentFacadeStub simulates repayment processing.
type RepaymentFacadeStub struct {
	RepayFn func(context.Context, *pkgAuth.Identity, int64, int64, decimal.NullDecimal) (*model.RepaymentResult, error)
}

// Repay reports a successful payment unless overridden.
func (s RepaymentFacadeStub) Repay(ctx context.Context, identity *pkgAuth.Identity, loanID, repaymentID int64, amount decimal.NullDecimal) (*model.RepaymentResult, error) {
	if s.RepayFn != nil {
		return s.RepayFn(ctx, identity, loanID, repaymentID, amount)
	}
	return &model.RepaymentResult{LoanID: loanID, RepaymentID: repaymentID, LoanStatus: model.LoanStatusApproved}, nil
}

// HealthCheckerStub returns configured error on health check.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck reports configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// LedgerFacadeStub aggregates facade dependencies for HTTP layer tests.
type LedgerFacadeStub struct {
	UserFacadeStub
	LoanFacadeStub
	RepaymentFacadeStub
	HealthCheckerStub
}
