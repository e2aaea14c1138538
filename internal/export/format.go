// Package export renders transaction listings for people: localized money,
// short dates and CSV files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

// DateLayout is the day-first layout used in exports and the CLI
const DateLayout = "02/01/2006"

// Formatter renders amounts in one locale with a fixed currency symbol
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for a BCP 47 locale such as pt-BR
func NewFormatter(symbol, locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{symbol: strings.TrimSpace(symbol), printer: message.NewPrinter(tag)}, nil
}

// Currency formats d with two decimals, the locale's separators and the
// currency symbol, e.g. "R$ 12.345,60" or "-R$ 50,00".
func (f *Formatter) Currency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	amount := f.printer.Sprint(number.Decimal(d.Abs().Round(2).InexactFloat64(), number.Scale(2)))
	if f.symbol == "" {
		return sign + amount
	}
	return sign + f.symbol + " " + amount
}

// Percent formats a 0-100 percentage with one decimal place
func (f *Formatter) Percent(p float64) string {
	return f.printer.Sprint(number.Decimal(p, number.Scale(1))) + "%"
}

// Date formats t as day/month/year
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// TypeLabel is the display name of a transaction type
func TypeLabel(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeIncome:
		return "Income"
	case models.TransactionTypeExpense:
		return "Expense"
	}
	return string(t)
}

// StatusLabel is the display name of a transaction status
func StatusLabel(s models.TransactionStatus) string {
	switch s {
	case models.TransactionStatusCompleted:
		return "Completed"
	case models.TransactionStatusPending:
		return "Pending"
	case models.TransactionStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Installments renders "current/total" for split purchases and "-" otherwise
func Installments(t models.Transaction) string {
	if !t.IsInstallment() {
		return "-"
	}
	return fmt.Sprintf("%d/%d", t.CurrentInstallment, t.Installments)
}
