package analytics

import (
	"sort"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryAmount is the total spent in one category
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpensesByCategory groups completed expenses by their exact category
// string and sorts the groups by amount, largest first. Ties keep the order
// in which the categories first appear.
func ExpensesByCategory(txs []models.Transaction) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense || t.Status != models.TransactionStatusCompleted {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Category: t.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// CategoryPercentage is the category's completed expenses as a share of the
// completed income of the same transactions. Returns 0 when the category has
// no expenses or there is no income.
func CategoryPercentage(category string, txs []models.Transaction) float64 {
	income := IncomeForPeriod(txs)
	for _, c := range ExpensesByCategory(txs) {
		if c.Category == category {
			return percentOf(c.Amount, income)
		}
	}
	return 0
}

// DistinctCategories lists every category used by txs, sorted ascending
func DistinctCategories(txs []models.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

// Default categories offered when recording a transaction.
var (
	DefaultIncomeCategories  = []string{"Salary", "Freelance", "Investments", "Rent", "Other"}
	DefaultExpenseCategories = []string{"Food", "Transport", "Housing", "Health", "Education", "Leisure", "Shopping", "Bills", "Other"}
)

// DefaultCategories returns the suggestions for the given transaction type
func DefaultCategories(txType models.TransactionType) []string {
	var src []string
	switch txType {
	case models.TransactionTypeIncome:
		src = DefaultIncomeCategories
	case models.TransactionTypeExpense:
		src = DefaultExpenseCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CategoryNames merges the categories in use with the income and expense
// defaults, sorted ascending without duplicates.
func CategoryNames(txs []models.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(names []string) {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	add(DistinctCategories(txs))
	add(DefaultCategories(models.TransactionTypeIncome))
	add(DefaultCategories(models.TransactionTypeExpense))
	sort.Strings(out)
	return out
}
