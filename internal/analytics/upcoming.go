package analytics

import (
	"sort"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

// UpcomingExpenses returns unpaid, non-cancelled expenses due today or
// later, earliest first. Days are compared as calendar days in now's
// location.
func UpcomingExpenses(txs []models.Transaction, now time.Time) []models.Transaction {
	today := startOfDay(now)
	out := make([]models.Transaction, 0)
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense || t.IsPaid || t.Status == models.TransactionStatusCancelled {
			continue
		}
		if startOfDay(t.Date.In(now.Location())).Before(today) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
