package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
	"github.com/polkiloo/loanledger/internal/pkg/lock"
)

// MaxTerms bounds the number of weekly installments of a single loan.
const MaxTerms = 1000

// LoanUseCase creates, lists and approves loans.
type LoanUseCase struct {
	loans  repository.LoanRepository
	locker lock.Locker
	now    func() time.Time
}

// NewLoanUseCase constructs LoanUseCase.
func NewLoanUseCase(loans repository.LoanRepository, locker lock.Locker) *LoanUseCase {
	return &LoanUseCase{loans: loans, locker: locker, now: time.Now}
}

// Create stores a pending loan for the caller together with its weekly schedule.
func (u *LoanUseCase) Create(ctx context.Context, identity *pkgAuth.Identity, amount int64, terms int) (*model.Loan, error) {
	if err := pkgAuth.Authorize(identity, pkgAuth.RoleUser); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domainErrors.Validation("amount must be a positive integer")
	}
	if terms <= 0 || terms > MaxTerms {
		return nil, domainErrors.Validation("terms must be between 1 and %d", MaxTerms)
	}

	created := calendarDay(u.now())
	loan := model.Loan{
		UserID:      identity.UserID,
		Amount:      amount,
		Terms:       terms,
		CreatedDate: created,
		Status:      model.LoanStatusPending,
	}
	return u.loans.Create(ctx, loan, GenerateSchedule(amount, terms, created))
}

// List returns the caller's loans with their repayments.
func (u *LoanUseCase) List(ctx context.Context, identity *pkgAuth.Identity) ([]model.Loan, error) {
	if err := pkgAuth.Authorize(identity, pkgAuth.RoleUser); err != nil {
		return nil, err
	}
	return u.loans.ListByUser(ctx, identity.UserID)
}

// Approve moves a loan to APPROVED. Only admins may approve. Approving a loan that is
// already APPROVED is a no-op overwrite; a PAID loan keeps its status.
func (u *LoanUseCase) Approve(ctx context.Context, identity *pkgAuth.Identity, loanID int64) error {
	if err := pkgAuth.Authorize(identity, pkgAuth.RoleAdmin); err != nil {
		return err
	}

	unlock, err := u.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return fmt.Errorf("lock loan %d: %w", loanID, err)
	}
	defer unlock()

	loan, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		return loanLookupError(err, loanID)
	}
	if loan.Status == model.LoanStatusPaid {
		return nil
	}
	if err := u.loans.UpdateStatus(ctx, loanID, model.LoanStatusApproved); err != nil {
		return loanLookupError(err, loanID)
	}
	return nil
}

func loanLookupError(err error, loanID int64) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return &domainErrors.NotFoundError{Entity: "Loan", ID: loanID}
	}
	return err
}
