package dto

import (
	"encoding/json"

	"github.com/polkiloo/loanledger/internal/domain/model"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateLoanRequest describes POST /loan payload.
type CreateLoanRequest struct {
	Amount *int64 `json:"amount"`
	Terms  *int   `json:"terms"`
}

// CreateLoanResponse carries the identifier of a new loan.
type CreateLoanResponse struct {
	ID int64 `json:"id"`
}

// LoanResponse is an entry of GET /loan.
type LoanResponse struct {
	ID         int64               `json:"id"`
	Amount     int64               `json:"amount"`
	Terms      int                 `json:"terms"`
	Repayments []RepaymentResponse `json:"repayments"`
	Status     model.LoanStatus    `json:"status"`
}

// RepaymentResponse describes one installment of a loan.
type RepaymentResponse struct {
	ID      int64                 `json:"id"`
	Amount  json.Number           `json:"amount"`
	Status  model.RepaymentStatus `json:"status"`
	DueDate string                `json:"due_date"`
}

// NewLoanResponse converts a loan with its schedule.
func NewLoanResponse(l model.Loan) LoanResponse {
	resp := LoanResponse{
		ID:         l.ID,
		Amount:     l.Amount,
		Terms:      l.Terms,
		Status:     l.Status,
		Repayments: make([]RepaymentResponse, 0, len(l.Repayments)),
	}
	for _, r := range l.Repayments {
		resp.Repayments = append(resp.Repayments, RepaymentResponse{
			ID:      r.ID,
			Amount:  json.Number(r.Amount.String()),
			Status:  r.Status,
			DueDate: r.DueDate.Format(DateLayout),
		})
	}
	return resp
}
