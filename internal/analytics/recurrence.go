package analytics

import (
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

// NextOccurrences returns the transactions to schedule once t is paid: the
// next occurrence of a recurring transaction and the next installment of a
// split purchase. Both may apply. Returned transactions have no ID and are
// pending and unpaid.
func NextOccurrences(t models.Transaction) []models.Transaction {
	var out []models.Transaction

	if t.IsRecurring && t.RecurringPeriod != nil {
		next := followUp(t)
		next.Date = advance(t.Date, *t.RecurringPeriod)
		out = append(out, next)
	}

	if t.Installments > 1 && t.CurrentInstallment < t.Installments {
		next := followUp(t)
		next.CurrentInstallment = t.CurrentInstallment + 1
		next.Date = addMonths(t.Date, 1)
		out = append(out, next)
	}

	return out
}

func followUp(t models.Transaction) models.Transaction {
	next := models.Transaction{
		Type:               t.Type,
		Amount:             t.Amount,
		Description:        t.Description,
		Category:           t.Category,
		AccountID:          t.AccountID,
		Installments:       t.Installments,
		CurrentInstallment: t.CurrentInstallment,
		IsRecurring:        t.IsRecurring,
		Status:             models.TransactionStatusPending,
		IsPaid:             false,
	}
	if t.MemberID != nil {
		id := *t.MemberID
		next.MemberID = &id
	}
	if t.RecurringPeriod != nil {
		p := *t.RecurringPeriod
		next.RecurringPeriod = &p
	}
	return next
}

func advance(t time.Time, period models.RecurringPeriod) time.Time {
	switch period {
	case models.RecurringPeriodWeekly:
		return t.AddDate(0, 0, 7)
	case models.RecurringPeriodYearly:
		return addMonths(t, 12)
	default:
		return addMonths(t, 1)
	}
}

// addMonths moves t by n months, clamping the day to the target month's
// length so Jan 31 + 1 month is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
