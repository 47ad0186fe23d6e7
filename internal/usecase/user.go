package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
)

// UserUseCase manages the user directory.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Register creates a user with a unique name.
func (u *UserUseCase) Register(ctx context.Context, userName string, isAdmin bool) (*model.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, domainErrors.Validation("please provide a user_name")
	}
	if utf8.RuneCountInString(userName) > model.MaxUserNameLength {
		return nil, domainErrors.Validation("user_name must not exceed %d characters", model.MaxUserNameLength)
	}

	usr, err := u.users.Create(ctx, userName, isAdmin)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return usr, nil
}

// Identify resolves a user name to an identity. Unknown and empty names yield a nil
// identity and no error.
func (u *UserUseCase) Identify(ctx context.Context, userName string) (*pkgAuth.Identity, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, nil
	}

	usr, err := u.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pkgAuth.FromUser(usr), nil
}
