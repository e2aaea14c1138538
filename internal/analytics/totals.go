package analytics

import (
	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalBalance is the sum of bank balances minus the sum of current card
// bills. The result is negative when card debt exceeds cash.
func TotalBalance(accounts []models.BankAccount, cards []models.CreditCard) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	for _, c := range cards {
		total = total.Sub(c.CurrentBill)
	}
	return total
}

// IncomeForPeriod sums completed income transactions
func IncomeForPeriod(txs []models.Transaction) decimal.Decimal {
	return sumCompleted(txs, models.TransactionTypeIncome)
}

// ExpensesForPeriod sums completed expense transactions
func ExpensesForPeriod(txs []models.Transaction) decimal.Decimal {
	return sumCompleted(txs, models.TransactionTypeExpense)
}

func sumCompleted(txs []models.Transaction, txType models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == txType && t.Status == models.TransactionStatusCompleted {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SavingsRate returns (income - expenses) / income as a percentage, or 0
// when there is no positive income.
func SavingsRate(income, expenses decimal.Decimal) float64 {
	return percentOf(income.Sub(expenses), income)
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}
