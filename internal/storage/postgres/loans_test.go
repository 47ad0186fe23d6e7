package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
)

var (
	loanCols      = []string{"id", "user_id", "amount", "terms", "created_date", "status"}
	repaymentCols = []string{"id", "loan_id", "amount", "status", "due_date"}
)

func TestLoanRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	loan := model.Loan{UserID: 3, Amount: 200, Terms: 2, CreatedDate: day, Status: model.LoanStatusPending}
	schedule := []model.Repayment{
		{Amount: decimal.NewFromInt(100), Status: model.RepaymentStatusPending, DueDate: day.AddDate(0, 0, 7)},
		{Amount: decimal.NewFromInt(100), Status: model.RepaymentStatusPending, DueDate: day.AddDate(0, 0, 14)},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO loans").WithArgs(int64(3), int64(200), 2, day, model.LoanStatusPending).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery("INSERT INTO repayments").WithArgs(int64(5), pgxmockv3.AnyArg(), model.RepaymentStatusPending, day.AddDate(0, 0, 7)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO repayments").WithArgs(int64(5), pgxmockv3.AnyArg(), model.RepaymentStatusPending, day.AddDate(0, 0, 14)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), loan, schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 5 || len(created.Repayments) != 2 {
		t.Fatalf("unexpected loan: %+v", created)
	}
	if created.Repayments[0].ID != 11 || created.Repayments[1].LoanID != 5 {
		t.Fatalf("unexpected repayments: %+v", created.Repayments)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO loans").WithArgs(int64(3), int64(200), 2, day, model.LoanStatusPending).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(6)))
	mock.ExpectQuery("INSERT INTO repayments").WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	if _, err := repo.Create(context.Background(), loan, schedule); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO loans").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	if _, err := repo.Create(context.Background(), loan, schedule); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(loanCols).AddRow(int64(1), int64(3), int64(100), 1, day, model.LoanStatusApproved))
	mock.ExpectQuery("SELECT id, loan_id, amount, status, due_date FROM repayments WHERE loan_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(repaymentCols).AddRow(int64(7), int64(1), decimal.NewFromInt(100), model.RepaymentStatusPending, day.AddDate(0, 0, 7)))

	loan, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.Status != model.LoanStatusApproved || len(loan.Repayments) != 1 || !loan.Repayments[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected loan: %+v", loan)
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE id=").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows(loanCols).AddRow(int64(3), int64(3), int64(100), 1, day, model.LoanStatusApproved))
	mock.ExpectQuery("SELECT id, loan_id, amount, status, due_date FROM repayments WHERE loan_id=").WithArgs(int64(3)).WillReturnError(errors.New("query"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryListByUser(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE user_id=").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows(loanCols).
			AddRow(int64(1), int64(3), int64(100), 1, day, model.LoanStatusPaid).
			AddRow(int64(2), int64(3), int64(300), 2, day, model.LoanStatusPending))
	mock.ExpectQuery("SELECT id, loan_id, amount, status, due_date FROM repayments").WithArgs([]int64{1, 2}).WillReturnRows(
		pgxmockv3.NewRows(repaymentCols).
			AddRow(int64(10), int64(1), decimal.NewFromInt(100), model.RepaymentStatusPaid, day.AddDate(0, 0, 7)).
			AddRow(int64(11), int64(2), decimal.NewFromInt(150), model.RepaymentStatusPending, day.AddDate(0, 0, 7)).
			AddRow(int64(12), int64(2), decimal.NewFromInt(150), model.RepaymentStatusPending, day.AddDate(0, 0, 14)))

	loans, err := repo.ListByUser(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loans) != 2 || len(loans[0].Repayments) != 1 || len(loans[1].Repayments) != 2 {
		t.Fatalf("unexpected loans: %+v", loans)
	}
	if loans[1].Repayments[1].ID != 12 {
		t.Fatalf("unexpected repayment order: %+v", loans[1].Repayments)
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE user_id=").WithArgs(int64(4)).WillReturnRows(
		pgxmockv3.NewRows(loanCols))
	loans, err = repo.ListByUser(context.Background(), 4)
	if err != nil || len(loans) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", loans, err)
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE user_id=").WithArgs(int64(5)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByUser(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE user_id=").WithArgs(int64(6)).WillReturnRows(
		pgxmockv3.NewRows(loanCols).AddRow("bad", int64(6), int64(100), 1, day, model.LoanStatusPending))
	if _, err := repo.ListByUser(context.Background(), 6); err == nil {
		t.Fatal("expected scan error")
	}

	mock.ExpectQuery("SELECT id, user_id, amount, terms, created_date, status FROM loans WHERE user_id=").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows(loanCols).AddRow(int64(1), int64(7), int64(100), 1, day, model.LoanStatusPending))
	mock.ExpectQuery("SELECT id, loan_id, amount, status, due_date FROM repayments").WithArgs([]int64{1}).WillReturnRows(
		pgxmockv3.NewRows(repaymentCols).
			AddRow(int64(10), int64(1), decimal.NewFromInt(100), model.RepaymentStatusPending, day).
			RowError(0, errors.New("row err")))
	if _, err := repo.ListByUser(context.Background(), 7); err == nil || err.Error() != "row err" {
		t.Fatalf("expected row err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLoanRepositoryListByUserRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows err")}}}
	repo := &loanRepository{storage: storage}

	if _, err := repo.ListByUser(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestLoanRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &loanRepository{storage: storage}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs(model.LoanStatusApproved, int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateStatus(context.Background(), 1, model.LoanStatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs(model.LoanStatusApproved, int64(2)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateStatus(context.Background(), 2, model.LoanStatusApproved); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE loans SET status=").WithArgs(model.LoanStatusApproved, int64(3)).WillReturnError(errors.New("exec"))
	if err := repo.UpdateStatus(context.Background(), 3, model.LoanStatusApproved); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
