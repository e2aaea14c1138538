package analytics

import (
	"testing"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

func TestUpcomingExpenses(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 0, 0, 0, time.UTC)
	unpaid := func(tx models.Transaction) models.Transaction {
		tx.IsPaid = false
		return tx
	}

	txs := []models.Transaction{
		unpaid(expense("100", "Bills", withDate(day(2024, time.May, 20)))),
		unpaid(expense("40", "Food", withDate(time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)))),
		unpaid(expense("60", "Leisure", withDate(day(2024, time.May, 9)))),
		unpaid(income("900", "Salary", withDate(day(2024, time.May, 15)))),
		unpaid(expense("70", "Health", withDate(day(2024, time.May, 12)), withStatus(models.TransactionStatusCancelled))),
		expense("80", "Housing", withDate(day(2024, time.May, 11)), func(t *models.Transaction) { t.IsPaid = true }),
		expense("25", "Transport", withDate(day(2024, time.May, 11))),
	}

	got := UpcomingExpenses(txs, now)
	want := []string{"Food", "Transport", "Bills"}
	if !equalStrings(categoriesOf(got), want) {
		t.Errorf("expected %v, got %v", want, categoriesOf(got))
	}

	if len(UpcomingExpenses(nil, now)) != 0 {
		t.Error("expected no upcoming expenses")
	}
}
