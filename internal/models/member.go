package models

import "github.com/shopspring/decimal"

// FamilyMember is a person in the household. Transactions reference members
// by ID but nothing cascades when a member is removed.
type FamilyMember struct {
	Base
	Name          string              `gorm:"not null" json:"name"`
	Role          string              `gorm:"not null" json:"role"`
	AvatarURL     string              `json:"avatar_url"`
	Email         *string             `json:"email,omitempty"`
	MonthlyIncome decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"monthly_income"`
}
