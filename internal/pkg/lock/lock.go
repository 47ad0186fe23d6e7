package lock

import (
	"context"
	"strconv"
)

// Unlock releases a previously acquired lock. Calling it more than once is a no-op.
type Unlock func()

// Locker serialises work on a key across concurrent requests.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// LoanKey returns the lock key guarding mutations of a single loan.
func LoanKey(loanID int64) string {
	return "loan:" + strconv.FormatInt(loanID, 10)
}
