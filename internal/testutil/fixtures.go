package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestMember creates a family member with a unique name.
func CreateTestMember(t *testing.T, db *gorm.DB) *models.FamilyMember {
	t.Helper()

	member := &models.FamilyMember{
		Name: fmt.Sprintf("Test Member %d", nextID()),
		Role: "Parent",
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// CreateTestBankAccount creates a checking account with the given balance.
func CreateTestBankAccount(t *testing.T, db *gorm.DB, holderID string, balance string) *models.BankAccount {
	t.Helper()

	checking := models.BankAccountTypeChecking
	account := &models.BankAccount{
		Name:        fmt.Sprintf("Test Account %d", nextID()),
		HolderID:    holderID,
		Balance:     decimal.RequireFromString(balance),
		AccountType: &checking,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}
	return account
}

// CreateTestCreditCard creates a card with a 5000 limit and the given bill.
func CreateTestCreditCard(t *testing.T, db *gorm.DB, holderID string, bill string) *models.CreditCard {
	t.Helper()

	card := &models.CreditCard{
		Name:        fmt.Sprintf("Test Card %d", nextID()),
		HolderID:    holderID,
		Limit:       decimal.NewFromInt(5000),
		CurrentBill: decimal.RequireFromString(bill),
		ClosingDay:  10,
		DueDay:      20,
		Theme:       models.CardThemeBlack,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test credit card: %v", err)
	}
	return card
}

// CreateTestTransaction creates a completed, paid transaction dated today.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID string, memberID *string, txType models.TransactionType, amount string, category string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:               txType,
		Amount:             decimal.RequireFromString(amount),
		Description:        fmt.Sprintf("Test transaction %d", nextID()),
		Category:           category,
		Date:               time.Now().UTC().Truncate(time.Second),
		AccountID:          accountID,
		MemberID:           memberID,
		Installments:       1,
		CurrentInstallment: 1,
		Status:             models.TransactionStatusCompleted,
		IsPaid:             true,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates an active goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, target, current string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Title:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
		Deadline:      time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Second),
		Category:      "Savings",
		Status:        models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
