package models

import "github.com/shopspring/decimal"

// CardTheme is the visual style of a card on the dashboard
type CardTheme string

const (
	CardThemeBlack CardTheme = "black"
	CardThemeLime  CardTheme = "lime"
	CardThemeWhite CardTheme = "white"
)

// CreditCard is a revolving credit line. CurrentBill counts as a liability
// when computing the family balance.
type CreditCard struct {
	Base
	Name        string          `gorm:"not null" json:"name"`
	HolderID    string          `gorm:"type:varchar(36);not null;index" json:"holder_id"`
	Limit       decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2);not null" json:"limit"`
	CurrentBill decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_bill"`
	ClosingDay  int             `gorm:"not null" json:"closing_day"`
	DueDay      int             `gorm:"not null" json:"due_day"`
	Theme       CardTheme       `gorm:"type:varchar(16);not null" json:"theme"`
	BankName    *string         `json:"bank_name,omitempty"`
	LastDigits  *string         `gorm:"type:varchar(4)" json:"last_digits,omitempty"`
}
