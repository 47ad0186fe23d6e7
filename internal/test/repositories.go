package test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/domain/model"
	"github.com/polkiloo/loanledger/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User), Next: 1}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, userName string, isAdmin bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[userName]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, UserName: userName, IsAdmin: isAdmin}
	s.Next++
	s.Users[userName] = user
	return user, nil
}

// GetByUserName fetches user by name or returns not found.
func (s *UserRepositoryStub) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[userName]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MemoryLedger keeps loans and repayments in memory. It implements both
// repository.LoanRepository and repository.Ledger; a failing transaction leaves the
// state as it was before the transaction started.
type MemoryLedger struct {
	mu         sync.Mutex
	loans      map[int64]model.Loan
	repayments map[int64]model.Repayment
	nextLoan   int64
	nextRepay  int64

	// FailOn makes the named method return the mapped error.
	FailOn map[string]error
}

// NewMemoryLedger constructs an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		loans:      make(map[int64]model.Loan),
		repayments: make(map[int64]model.Repayment),
		FailOn:     make(map[string]error),
	}
}

func (m *MemoryLedger) fail(method string) error {
	return m.FailOn[method]
}

// Create stores the loan and its schedule.
func (m *MemoryLedger) Create(ctx context.Context, loan model.Loan, schedule []model.Repayment) (*model.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Create"); err != nil {
		return nil, err
	}

	m.nextLoan++
	loan.ID = m.nextLoan
	loan.Repayments = nil
	m.loans[loan.ID] = loan
	for _, r := range schedule {
		m.nextRepay++
		r.ID = m.nextRepay
		r.LoanID = loan.ID
		m.repayments[r.ID] = r
	}
	created := m.loadLoan(loan.ID)
	return &created, nil
}

// GetByID returns the loan with its repayments.
func (m *MemoryLedger) GetByID(ctx context.Context, id int64) (*model.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetByID"); err != nil {
		return nil, err
	}
	if _, ok := m.loans[id]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	loan := m.loadLoan(id)
	return &loan, nil
}

// ListByUser returns the loans of a user ordered by id.
func (m *MemoryLedger) ListByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListByUser"); err != nil {
		return nil, err
	}
	var out []model.Loan
	for id, l := range m.loans {
		if l.UserID == userID {
			out = append(out, m.loadLoan(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateStatus overwrites the loan status.
func (m *MemoryLedger) UpdateStatus(ctx context.Context, id int64, status model.LoanStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateStatus"); err != nil {
		return err
	}
	loan, ok := m.loans[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	loan.Status = status
	m.loans[id] = loan
	return nil
}

// WithinTransaction runs fn while holding the ledger exclusively.
func (m *MemoryLedger) WithinTransaction(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("WithinTransaction"); err != nil {
		return err
	}

	loans := make(map[int64]model.Loan, len(m.loans))
	for k, v := range m.loans {
		loans[k] = v
	}
	repayments := make(map[int64]model.Repayment, len(m.repayments))
	for k, v := range m.repayments {
		repayments[k] = v
	}

	if err := fn(memoryTx{m: m}); err != nil {
		m.loans = loans
		m.repayments = repayments
		return err
	}
	return nil
}

// Loan returns a snapshot of the stored loan.
func (m *MemoryLedger) Loan(id int64) model.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLoan(id)
}

// SeedLoan stores a loan and its repayments as given, keeping their identifiers.
func (m *MemoryLedger) SeedLoan(loan model.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range loan.Repayments {
		r.LoanID = loan.ID
		m.repayments[r.ID] = r
		if r.ID > m.nextRepay {
			m.nextRepay = r.ID
		}
	}
	loan.Repayments = nil
	m.loans[loan.ID] = loan
	if loan.ID > m.nextLoan {
		m.nextLoan = loan.ID
	}
}

func (m *MemoryLedger) loadLoan(id int64) model.Loan {
	loan := m.loans[id]
	loan.Repayments = nil
	for _, r := range m.repayments {
		if r.LoanID == id {
			loan.Repayments = append(loan.Repayments, r)
		}
	}
	sort.Slice(loan.Repayments, func(i, j int) bool {
		a, b := loan.Repayments[i], loan.Repayments[j]
		if a.DueDate.Equal(b.DueDate) {
			return a.ID < b.ID
		}
		return a.DueDate.Before(b.DueDate)
	})
	return loan
}

type memoryTx struct {
	m *MemoryLedger
}

func (t memoryTx) LockLoan(ctx context.Context, loanID int64) (*model.Loan, error) {
	if err := t.m.fail("LockLoan"); err != nil {
		return nil, err
	}
	loan, ok := t.m.loans[loanID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &loan, nil
}

func (t memoryTx) GetRepayment(ctx context.Context, loanID, repaymentID int64) (*model.Repayment, error) {
	if err := t.m.fail("GetRepayment"); err != nil {
		return nil, err
	}
	r, ok := t.m.repayments[repaymentID]
	if !ok || r.LoanID != loanID {
		return nil, domainErrors.ErrNotFound
	}
	return &r, nil
}

func (t memoryTx) MarkRepaymentPaid(ctx context.Context, repaymentID int64, amount decimal.Decimal) error {
	if err := t.m.fail("MarkRepaymentPaid"); err != nil {
		return err
	}
	r, ok := t.m.repayments[repaymentID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	r.Amount = amount
	r.Status = model.RepaymentStatusPaid
	t.m.repayments[repaymentID] = r
	return nil
}

func (t memoryTx) SumPaid(ctx context.Context, loanID int64) (decimal.Decimal, error) {
	if err := t.m.fail("SumPaid"); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, r := range t.m.repayments {
		if r.LoanID == loanID && r.Status == model.RepaymentStatusPaid {
			sum = sum.Add(r.Amount)
		}
	}
	return sum, nil
}

func (t memoryTx) CountPending(ctx context.Context, loanID int64) (int64, error) {
	if err := t.m.fail("CountPending"); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range t.m.repayments {
		if r.LoanID == loanID && r.Status == model.RepaymentStatusPending {
			n++
		}
	}
	return n, nil
}

func (t memoryTx) SetPendingAmounts(ctx context.Context, loanID int64, amount decimal.Decimal) error {
	if err := t.m.fail("SetPendingAmounts"); err != nil {
		return err
	}
	for id, r := range t.m.repayments {
		if r.LoanID == loanID && r.Status == model.RepaymentStatusPending {
			r.Amount = amount
			t.m.repayments[id] = r
		}
	}
	return nil
}

func (t memoryTx) SetLoanStatus(ctx context.Context, loanID int64, status model.LoanStatus) error {
	if err := t.m.fail("SetLoanStatus"); err != nil {
		return err
	}
	loan, ok := t.m.loans[loanID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	loan.Status = status
	t.m.loans[loanID] = loan
	return nil
}

var (
	_ repository.UserRepository = (*UserRepositoryStub)(nil)
	_ repository.LoanRepository = (*MemoryLedger)(nil)
	_ repository.Ledger         = (*MemoryLedger)(nil)
)
