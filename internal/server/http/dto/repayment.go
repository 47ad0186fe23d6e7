package dto

import "github.com/shopspring/decimal"

// RepaymentRequest describes PUT /repayment payload. Amount accepts a JSON number or
// a numeric string; a missing or null amount stays invalid and is rejected by the
// ledger once the loan and installment checks pass.
type RepaymentRequest struct {
	Amount decimal.NullDecimal `json:"amount"`
}
