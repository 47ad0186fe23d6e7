package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
)

const uniqueViolation = "23505"

type userRepository struct {
	storage *Storage
}

func (r *userRepository) Create(ctx context.Context, userName string, isAdmin bool) (*model.User, error) {
	const query = `INSERT INTO users (user_name, is_admin) VALUES ($1, $2) RETURNING id, created_at`
	u := model.User{UserName: userName, IsAdmin: isAdmin}
	err := r.storage.pool.QueryRow(ctx, query, userName, isAdmin).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	const query = `SELECT id, user_name, is_admin, created_at FROM users WHERE user_name=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, userName).Scan(&u.ID, &u.UserName, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
