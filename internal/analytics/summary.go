package analytics

import (
	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of the family's five collections
type Snapshot struct {
	Transactions []models.Transaction  `json:"transactions"`
	Goals        []models.Goal         `json:"goals"`
	CreditCards  []models.CreditCard   `json:"credit_cards"`
	BankAccounts []models.BankAccount  `json:"bank_accounts"`
	Members      []models.FamilyMember `json:"members"`
}

// CategoryShare is a category breakdown entry with its share of income
type CategoryShare struct {
	CategoryAmount
	Percentage float64 `json:"percentage"`
}

// Summary holds the headline dashboard figures for one filter state
type Summary struct {
	TotalBalance     decimal.Decimal `json:"total_balance"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	SavingsRate      float64         `json:"savings_rate"`
	Categories       []CategoryShare `json:"categories"`
	TransactionCount int             `json:"transaction_count"`
}

// Summarize computes the dashboard figures. Balances come from the account
// and card snapshots and ignore the filters; everything else is computed
// over the filtered transactions.
func Summarize(s Snapshot, f Filters) Summary {
	filtered := FilterTransactions(s.Transactions, f)
	income := IncomeForPeriod(filtered)
	expenses := ExpensesForPeriod(filtered)

	breakdown := ExpensesByCategory(filtered)
	shares := make([]CategoryShare, len(breakdown))
	for i, c := range breakdown {
		shares[i] = CategoryShare{CategoryAmount: c, Percentage: percentOf(c.Amount, income)}
	}

	return Summary{
		TotalBalance:     TotalBalance(s.BankAccounts, s.CreditCards),
		Income:           income,
		Expenses:         expenses,
		SavingsRate:      SavingsRate(income, expenses),
		Categories:       shares,
		TransactionCount: len(filtered),
	}
}
