package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("invalid/missing user credentials in the request header")
	ErrInvalidState       = errors.New("invalid state")
	ErrInsufficientAmount = errors.New("insufficient amount")
	ErrValidation         = errors.New("validation failed")

	// ErrLoanNotApproved is returned for repayments against a loan still waiting for approval.
	ErrLoanNotApproved = fmt.Errorf("%w: the loan is not approved yet, repayments can only be done for approved loans", ErrInvalidState)
)

// NotFoundError reports a missing loan or repayment by identifier.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d does not exist", e.Entity, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientAmountError carries the minimum amount accepted for a repayment.
type InsufficientAmountError struct {
	Expected decimal.Decimal
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("the repayment amount is less than expected, the minimum expected amount for this repayment is %s", e.Expected.String())
}

// Is matches ErrInsufficientAmount.
func (e *InsufficientAmountError) Is(target error) bool {
	return target == ErrInsufficientAmount
}

// Validation wraps a message describing malformed input.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
