package repository

import (
	"context"

	"github.com/polkiloo/loanledger/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, userName string, isAdmin bool) (*model.User, error)
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
}
