package analytics

import (
	"sort"
	"strings"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionQuery narrows an already filtered list further. Empty fields
// do not restrict.
type TransactionQuery struct {
	Type      models.TransactionType
	Category  string
	AccountID string
	MemberID  string
	Status    models.TransactionStatus
	Search    string
}

// Matches reports whether t satisfies every set field of q
func (q TransactionQuery) Matches(t *models.Transaction) bool {
	if q.Type != "" && t.Type != q.Type {
		return false
	}
	if q.Category != "" && t.Category != q.Category {
		return false
	}
	if q.AccountID != "" && t.AccountID != q.AccountID {
		return false
	}
	if q.MemberID != "" && (t.MemberID == nil || *t.MemberID != q.MemberID) {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	return matchesSearch(t, q.Search)
}

// ApplyQuery returns the transactions matching q, in input order
func ApplyQuery(txs []models.Transaction, q TransactionQuery) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if q.Matches(&txs[i]) {
			out = append(out, txs[i])
		}
	}
	return out
}

// SortField selects the column transactions are ordered by
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
)

// Valid reports whether f is a known sort column
func (f SortField) Valid() bool {
	switch f {
	case SortByDate, SortByAmount, SortByDescription, SortByCategory:
		return true
	}
	return false
}

// SortDirection is ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// SortTransactions returns a sorted copy of txs. Unknown fields sort by
// date; any direction other than asc sorts descending.
func SortTransactions(txs []models.Transaction, field SortField, dir SortDirection) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)

	var cmp func(a, b *models.Transaction) int
	switch field {
	case SortByAmount:
		cmp = func(a, b *models.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByDescription:
		cmp = func(a, b *models.Transaction) int { return strings.Compare(a.Description, b.Description) }
	case SortByCategory:
		cmp = func(a, b *models.Transaction) int { return strings.Compare(a.Category, b.Category) }
	default:
		cmp = func(a, b *models.Transaction) int { return a.Date.Compare(b.Date) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if dir == SortAsc {
			return c < 0
		}
		return c > 0
	})
	return out
}

// Stats summarizes a transaction listing. Unlike the period calculators it
// counts every status.
type Stats struct {
	Incomes    decimal.Decimal `json:"incomes"`
	Expenses   decimal.Decimal `json:"expenses"`
	Difference decimal.Decimal `json:"difference"`
	Count      int             `json:"count"`
}

// ComputeStats totals incomes and expenses of txs regardless of status
func ComputeStats(txs []models.Transaction) Stats {
	s := Stats{Incomes: decimal.Zero, Expenses: decimal.Zero, Count: len(txs)}
	for _, t := range txs {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.Incomes = s.Incomes.Add(t.Amount)
		case models.TransactionTypeExpense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Difference = s.Incomes.Sub(s.Expenses)
	return s
}
