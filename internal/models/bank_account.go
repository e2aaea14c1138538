package models

import "github.com/shopspring/decimal"

// BankAccountType classifies a bank account
type BankAccountType string

const (
	BankAccountTypeChecking   BankAccountType = "checking"
	BankAccountTypeSavings    BankAccountType = "savings"
	BankAccountTypeInvestment BankAccountType = "investment"
)

// BankAccount holds money owned by a family member
type BankAccount struct {
	Base
	Name          string           `gorm:"not null" json:"name"`
	HolderID      string           `gorm:"type:varchar(36);not null;index" json:"holder_id"`
	Balance       decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"balance"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	Agency        *string          `json:"agency,omitempty"`
	AccountType   *BankAccountType `gorm:"type:varchar(16)" json:"account_type,omitempty"`
}
