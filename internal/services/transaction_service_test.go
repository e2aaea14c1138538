package services

import (
	"testing"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/testutil"
)

func expenseInput(accountID string, amount string) TransactionInput {
	return TransactionInput{
		Type:        ptr(models.TransactionTypeExpense),
		Amount:      decPtr(amount),
		Description: ptr("Supermarket"),
		Category:    ptr("Food"),
		AccountID:   &accountID,
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "1000")

		tx, err := svc.CreateTransaction(expenseInput(account.ID, "42.50"))
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected an ID")
		}
		if tx.Installments != 1 || tx.CurrentInstallment != 1 {
			t.Errorf("expected a lump sum, got %d/%d", tx.CurrentInstallment, tx.Installments)
		}
		if tx.Status != models.TransactionStatusCompleted || tx.IsPaid {
			t.Errorf("expected completed and unpaid, got %s paid=%t", tx.Status, tx.IsPaid)
		}
		if tx.RecurringPeriod != nil {
			t.Error("non recurring transaction must not carry a period")
		}
		if time.Since(tx.Date) > time.Minute {
			t.Error("date should default to now")
		}
	})

	t.Run("charged_to_card", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		card := testutil.CreateTestCreditCard(t, db, member.ID, "0")

		input := expenseInput(card.ID, "600")
		input.MemberID = &member.ID
		input.Installments = ptr(6)
		tx, err := svc.CreateTransaction(input)
		testutil.AssertNoError(t, err)
		if tx.Installments != 6 || tx.CurrentInstallment != 1 {
			t.Errorf("unexpected installments %d/%d", tx.CurrentInstallment, tx.Installments)
		}
	})

	t.Run("recurring_defaults_to_monthly", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")

		input := expenseInput(account.ID, "99.90")
		input.IsRecurring = ptr(true)
		tx, err := svc.CreateTransaction(input)
		testutil.AssertNoError(t, err)
		if tx.RecurringPeriod == nil || *tx.RecurringPeriod != models.RecurringPeriodMonthly {
			t.Error("expected monthly recurrence")
		}
	})

	t.Run("unknown_account", func(t *testing.T) {
		st, _ := setupStore(t)
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(expenseInput("nowhere", "10"))
		testutil.AssertAppError(t, err, "INVALID_PAYMENT_SOURCE")
	})

	t.Run("unknown_member", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")

		input := expenseInput(account.ID, "10")
		input.MemberID = ptr("ghost")
		_, err := svc.CreateTransaction(input)
		testutil.AssertAppError(t, err, "INVALID_MEMBER_REFERENCE")
	})

	t.Run("invalid_input", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")

		zero := expenseInput(account.ID, "0")
		_, err := svc.CreateTransaction(zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		transfer := expenseInput(account.ID, "10")
		transfer.Type = ptr(models.TransactionType("transfer"))
		_, err = svc.CreateTransaction(transfer)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		blank := expenseInput(account.ID, "10")
		blank.Description = ptr("  ")
		_, err = svc.CreateTransaction(blank)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		installment := expenseInput(account.ID, "10")
		installment.Installments = ptr(2)
		installment.CurrentInstallment = ptr(3)
		_, err = svc.CreateTransaction(installment)
		testutil.AssertAppError(t, err, "INVALID_INSTALLMENT")
	})
}

func TestGetTransactions(t *testing.T) {
	st, db := setupStore(t)
	svc := NewTransactionService(st)
	parent := testutil.CreateTestMember(t, db)
	child := testutil.CreateTestMember(t, db)
	account := testutil.CreateTestBankAccount(t, db, parent.ID, "0")

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	create := func(txType models.TransactionType, amount, category string, member *string, days int) {
		input := TransactionInput{
			Type:        &txType,
			Amount:      decPtr(amount),
			Description: ptr(category + " payment"),
			Category:    &category,
			AccountID:   &account.ID,
			MemberID:    member,
			Date:        ptr(base.AddDate(0, 0, days)),
		}
		if _, err := svc.CreateTransaction(input); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}
	create(models.TransactionTypeIncome, "5000", "Salary", &parent.ID, 0)
	create(models.TransactionTypeExpense, "300", "Housing", &parent.ID, 1)
	create(models.TransactionTypeExpense, "45", "Food", &child.ID, 2)
	create(models.TransactionTypeExpense, "80", "Food", nil, 3)

	t.Run("newest_first_by_default", func(t *testing.T) {
		resp, err := svc.GetTransactions(TransactionListing{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 4 || resp.Data[0].Category != "Food" || resp.Data[3].Category != "Salary" {
			t.Errorf("unexpected listing %+v", resp.Data)
		}
	})

	t.Run("global_member_filter", func(t *testing.T) {
		st.SetSelectedMember(&parent.ID)
		defer st.ResetFilters()

		resp, err := svc.GetTransactions(TransactionListing{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 transactions for the parent, got %d", resp.TotalItems)
		}
	})

	t.Run("local_query_sort_and_page", func(t *testing.T) {
		resp, err := svc.GetTransactions(TransactionListing{
			Query:     analytics.TransactionQuery{Type: models.TransactionTypeExpense},
			Sort:      analytics.SortByAmount,
			Direction: analytics.SortAsc,
			Page:      pagination.PageRequest{Page: 1, PageSize: 2},
		})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 3 || resp.TotalPages != 2 || len(resp.Data) != 2 {
			t.Fatalf("unexpected page %+v", resp)
		}
		testutil.AssertDecimal(t, resp.Data[0].Amount, "45")
		testutil.AssertDecimal(t, resp.Data[1].Amount, "80")
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := svc.GetTransactionStats(analytics.TransactionQuery{})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, stats.Incomes, "5000")
		testutil.AssertDecimal(t, stats.Expenses, "425")
		testutil.AssertDecimal(t, stats.Difference, "4575")
		if stats.Count != 4 {
			t.Errorf("expected 4, got %d", stats.Count)
		}
	})

	t.Run("export_ignores_paging", func(t *testing.T) {
		data, err := svc.ExportTransactions(TransactionListing{
			Query: analytics.TransactionQuery{Category: "Food"},
			Page:  pagination.PageRequest{Page: 1, PageSize: 1},
		})
		testutil.AssertNoError(t, err)
		if len(data.Transactions) != 2 {
			t.Errorf("expected 2 exported rows, got %d", len(data.Transactions))
		}
		if len(data.Snapshot.Members) != 2 || len(data.Snapshot.BankAccounts) != 1 {
			t.Error("export should carry the lookup collections")
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("merges_fields", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
		tx := testutil.CreateTestTransaction(t, db, account.ID, nil, models.TransactionTypeExpense, "10", "Food")

		updated, err := svc.UpdateTransaction(tx.ID, TransactionInput{
			Amount:   decPtr("12.75"),
			Category: ptr("Leisure"),
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, updated.Amount, "12.75")
		if updated.Category != "Leisure" || updated.Description != tx.Description {
			t.Errorf("unexpected merge %+v", updated)
		}
		if !updated.UpdatedAt.After(tx.UpdatedAt) {
			t.Error("updated_at should be refreshed")
		}
	})

	t.Run("empty_member_clears_attribution", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
		tx := testutil.CreateTestTransaction(t, db, account.ID, &member.ID, models.TransactionTypeExpense, "10", "Food")

		updated, err := svc.UpdateTransaction(tx.ID, TransactionInput{MemberID: ptr("")})
		testutil.AssertNoError(t, err)
		if updated.MemberID != nil {
			t.Errorf("expected family-wide transaction, got member %q", *updated.MemberID)
		}

		unchanged, err := svc.UpdateTransaction(tx.ID, TransactionInput{Category: ptr("Bills")})
		testutil.AssertNoError(t, err)
		if unchanged.MemberID != nil {
			t.Error("omitting member_id must not restore the member")
		}

		reassigned, err := svc.UpdateTransaction(tx.ID, TransactionInput{MemberID: &member.ID})
		testutil.AssertNoError(t, err)
		if reassigned.MemberID == nil || *reassigned.MemberID != member.ID {
			t.Errorf("expected member %s, got %v", member.ID, reassigned.MemberID)
		}
	})

	t.Run("rejects_unknown_account", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
		tx := testutil.CreateTestTransaction(t, db, account.ID, nil, models.TransactionTypeExpense, "10", "Food")

		_, err := svc.UpdateTransaction(tx.ID, TransactionInput{AccountID: ptr("gone")})
		testutil.AssertAppError(t, err, "INVALID_PAYMENT_SOURCE")
	})

	t.Run("not_found", func(t *testing.T) {
		st, _ := setupStore(t)
		svc := NewTransactionService(st)

		_, err := svc.UpdateTransaction("missing", TransactionInput{Amount: decPtr("1")})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	st, db := setupStore(t)
	svc := NewTransactionService(st)
	member := testutil.CreateTestMember(t, db)
	account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
	tx := testutil.CreateTestTransaction(t, db, account.ID, nil, models.TransactionTypeIncome, "10", "Salary")

	testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID))
	_, err := svc.GetTransactionByID(tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	testutil.AssertAppError(t, svc.DeleteTransaction(tx.ID), "TRANSACTION_NOT_FOUND")
}

func TestMarkAsPaid(t *testing.T) {
	t.Run("recurring_installment_schedules_both", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		card := testutil.CreateTestCreditCard(t, db, member.ID, "0")

		input := expenseInput(card.ID, "150")
		input.Date = ptr(time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC))
		input.Status = ptr(models.TransactionStatusPending)
		input.Installments = ptr(3)
		input.IsRecurring = ptr(true)
		tx, err := svc.CreateTransaction(input)
		testutil.AssertNoError(t, err)

		result, err := svc.MarkAsPaid(tx.ID)
		testutil.AssertNoError(t, err)

		if !result.Transaction.IsPaid || result.Transaction.Status != models.TransactionStatusCompleted {
			t.Errorf("expected paid and completed, got %+v", result.Transaction)
		}
		if len(result.Scheduled) != 2 {
			t.Fatalf("expected 2 scheduled transactions, got %d", len(result.Scheduled))
		}
		for _, next := range result.Scheduled {
			if next.ID == "" || next.ID == tx.ID {
				t.Error("scheduled transactions need their own ids")
			}
			if next.IsPaid || next.Status != models.TransactionStatusPending {
				t.Errorf("scheduled transaction should be pending, got %+v", next)
			}
			if !next.Date.Equal(time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)) {
				t.Errorf("expected Feb 29, got %s", next.Date)
			}
		}
		if result.Scheduled[1].CurrentInstallment != 2 {
			t.Errorf("expected installment 2, got %d", result.Scheduled[1].CurrentInstallment)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 3 {
			t.Errorf("expected 3 stored transactions, got %d", count)
		}
	})

	t.Run("lump_sum_schedules_nothing", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
		tx, err := svc.CreateTransaction(expenseInput(account.ID, "10"))
		testutil.AssertNoError(t, err)

		result, err := svc.MarkAsPaid(tx.ID)
		testutil.AssertNoError(t, err)
		if result.Scheduled == nil || len(result.Scheduled) != 0 {
			t.Errorf("expected an empty schedule, got %v", result.Scheduled)
		}
	})

	t.Run("already_paid", func(t *testing.T) {
		st, db := setupStore(t)
		svc := NewTransactionService(st)
		member := testutil.CreateTestMember(t, db)
		account := testutil.CreateTestBankAccount(t, db, member.ID, "0")
		tx := testutil.CreateTestTransaction(t, db, account.ID, nil, models.TransactionTypeExpense, "10", "Bills")

		_, err := svc.MarkAsPaid(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_ALREADY_PAID")
	})

	t.Run("not_found", func(t *testing.T) {
		st, _ := setupStore(t)
		svc := NewTransactionService(st)

		_, err := svc.MarkAsPaid("missing")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
