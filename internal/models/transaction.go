package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// RecurringPeriod is the repetition cadence of a recurring transaction
type RecurringPeriod string

const (
	RecurringPeriodMonthly RecurringPeriod = "monthly"
	RecurringPeriodWeekly  RecurringPeriod = "weekly"
	RecurringPeriodYearly  RecurringPeriod = "yearly"
)

// Transaction is a single income or expense event. AccountID points at
// either a BankAccount or a CreditCard; the reference is not enforced and
// may dangle after the target is deleted.
type Transaction struct {
	Base
	Type               TransactionType   `gorm:"type:varchar(16);not null;index" json:"type"`
	Amount             decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description        string            `gorm:"not null" json:"description"`
	Category           string            `gorm:"not null;index" json:"category"`
	Date               time.Time         `gorm:"not null;index" json:"date"`
	AccountID          string            `gorm:"type:varchar(36);not null;index" json:"account_id"`
	MemberID           *string           `gorm:"type:varchar(36);index" json:"member_id"`
	Installments       int               `gorm:"not null" json:"installments"`
	CurrentInstallment int               `gorm:"not null" json:"current_installment"`
	Status             TransactionStatus `gorm:"type:varchar(16);not null" json:"status"`
	IsRecurring        bool              `json:"is_recurring"`
	RecurringPeriod    *RecurringPeriod  `gorm:"type:varchar(16)" json:"recurring_period,omitempty"`
	IsPaid             bool              `json:"is_paid"`
}

// IsInstallment reports whether the transaction is split in several parts
func (t *Transaction) IsInstallment() bool {
	return t.Installments > 1
}
