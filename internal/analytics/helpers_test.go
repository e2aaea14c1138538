package analytics

import (
	"testing"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

type txOpt func(*models.Transaction)

func withMember(id string) txOpt {
	return func(t *models.Transaction) { t.MemberID = ptr(id) }
}

func withStatus(s models.TransactionStatus) txOpt {
	return func(t *models.Transaction) { t.Status = s }
}

func withDate(d time.Time) txOpt {
	return func(t *models.Transaction) { t.Date = d }
}

func withDescription(s string) txOpt {
	return func(t *models.Transaction) { t.Description = s }
}

func withAccount(id string) txOpt {
	return func(t *models.Transaction) { t.AccountID = id }
}

func income(amount, category string, opts ...txOpt) models.Transaction {
	return newTx(models.TransactionTypeIncome, amount, category, opts...)
}

func expense(amount, category string, opts ...txOpt) models.Transaction {
	return newTx(models.TransactionTypeExpense, amount, category, opts...)
}

func newTx(txType models.TransactionType, amount, category string, opts ...txOpt) models.Transaction {
	t := models.Transaction{
		Type:               txType,
		Amount:             dec(amount),
		Description:        category + " entry",
		Category:           category,
		Date:               day(2024, time.January, 15),
		AccountID:          "acc-1",
		Installments:       1,
		CurrentInstallment: 1,
		Status:             models.TransactionStatusCompleted,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func categoriesOf(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.Category
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
