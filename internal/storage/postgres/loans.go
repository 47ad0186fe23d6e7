package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
)

const (
	loanColumns      = `id, user_id, amount, terms, created_date, status`
	repaymentColumns = `id, loan_id, amount, status, due_date`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type loanRepository struct {
	storage *Storage
}

func (r *loanRepository) Create(ctx context.Context, loan model.Loan, schedule []model.Repayment) (*model.Loan, error) {
	const insertLoan = `INSERT INTO loans (user_id, amount, terms, created_date, status)
                        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	const insertRepayment = `INSERT INTO repayments (loan_id, amount, status, due_date)
                             VALUES ($1, $2, $3, $4) RETURNING id`

	created := loan
	created.Repayments = make([]model.Repayment, 0, len(schedule))
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertLoan, loan.UserID, loan.Amount, loan.Terms, loan.CreatedDate, loan.Status).Scan(&created.ID)
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}
		for _, rp := range schedule {
			rp.LoanID = created.ID
			if err := tx.QueryRow(ctx, insertRepayment, rp.LoanID, rp.Amount, rp.Status, rp.DueDate).Scan(&rp.ID); err != nil {
				return fmt.Errorf("insert repayment: %w", err)
			}
			created.Repayments = append(created.Repayments, rp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*model.Loan, error) {
	const loanQuery = `SELECT ` + loanColumns + ` FROM loans WHERE id=$1`
	const repaymentsQuery = `SELECT ` + repaymentColumns + ` FROM repayments WHERE loan_id=$1 ORDER BY due_date, id`

	loan, err := scanLoan(r.storage.pool.QueryRow(ctx, loanQuery, id))
	if err != nil {
		return nil, err
	}
	loan.Repayments, err = selectRepayments(ctx, r.storage.pool, repaymentsQuery, id)
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	const loansQuery = `SELECT ` + loanColumns + ` FROM loans WHERE user_id=$1 ORDER BY id`
	const repaymentsQuery = `SELECT ` + repaymentColumns + ` FROM repayments
                             WHERE loan_id = ANY($1) ORDER BY loan_id, due_date, id`

	rows, err := r.storage.pool.Query(ctx, loansQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return loans, nil
	}

	ids := make([]int64, len(loans))
	index := make(map[int64]int, len(loans))
	for i, l := range loans {
		ids[i] = l.ID
		index[l.ID] = i
	}
	repayments, err := selectRepayments(ctx, r.storage.pool, repaymentsQuery, ids)
	if err != nil {
		return nil, err
	}
	for _, rp := range repayments {
		if i, ok := index[rp.LoanID]; ok {
			loans[i].Repayments = append(loans[i].Repayments, rp)
		}
	}
	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id int64, status model.LoanStatus) error {
	const query = `UPDATE loans SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var l model.Loan
	if err := row.Scan(&l.ID, &l.UserID, &l.Amount, &l.Terms, &l.CreatedDate, &l.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func scanRepayment(row pgx.Row) (*model.Repayment, error) {
	var rp model.Repayment
	if err := row.Scan(&rp.ID, &rp.LoanID, &rp.Amount, &rp.Status, &rp.DueDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rp, nil
}

func selectRepayments(ctx context.Context, q querier, query string, args ...any) ([]model.Repayment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Repayment
	for rows.Next() {
		rp, err := scanRepayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
