package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/loanledger/internal/domain/model"
)

// GenerateSchedule splits principal into terms equal weekly installments. The first
// installment is due one week after created. Amounts are not rounded; any drift is
// absorbed when repayments are rebalanced.
func GenerateSchedule(principal int64, terms int, created time.Time) []model.Repayment {
	if terms <= 0 {
		return nil
	}
	share := decimal.NewFromInt(principal).Div(decimal.NewFromInt(int64(terms)))

	schedule := make([]model.Repayment, 0, terms)
	for i := 0; i < terms; i++ {
		schedule = append(schedule, model.Repayment{
			Amount:  share,
			Status:  model.RepaymentStatusPending,
			DueDate: created.AddDate(0, 0, 7*(i+1)),
		})
	}
	return schedule
}

// calendarDay truncates t to midnight UTC.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
