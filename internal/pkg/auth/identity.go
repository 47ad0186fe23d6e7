package auth

import (
	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
)

// HeaderName carries the caller's user name on every authenticated request.
const HeaderName = "Username"

// Role is the minimum privilege an action requires.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// Identity is a request resolved to a known user. A nil *Identity is an anonymous caller.
type Identity struct {
	UserID   int64
	UserName string
	Admin    bool
}

// FromUser builds identity for a stored user.
func FromUser(u *model.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{UserID: u.ID, UserName: u.UserName, Admin: u.IsAdmin}
}

// Authorize checks that identity is present and carries the required role.
func Authorize(identity *Identity, role Role) error {
	if identity == nil {
		return domainErrors.ErrUnauthorized
	}
	if role == RoleAdmin && !identity.Admin {
		return domainErrors.ErrUnauthorized
	}
	return nil
}
