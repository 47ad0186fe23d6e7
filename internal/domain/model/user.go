package model

import "time"

// MaxUserNameLength bounds the external user name.
const MaxUserNameLength = 50

// User represents a borrower or an administrator of the ledger.
type User struct {
	ID        int64
	UserName  string
	IsAdmin   bool
	CreatedAt time.Time
}
