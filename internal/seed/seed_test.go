package seed

import (
	"testing"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

func testOptions() Options {
	return Options{
		Seed:         7,
		Now:          time.Date(2024, time.June, 30, 9, 0, 0, 0, time.UTC),
		IncomeCount:  8,
		ExpenseCount: 22,
	}
}

func TestGenerate(t *testing.T) {
	snap := Generate(testOptions())

	t.Run("volumes", func(t *testing.T) {
		if len(snap.Members) != 3 || len(snap.BankAccounts) != 2 || len(snap.CreditCards) != 3 || len(snap.Goals) != 4 {
			t.Fatalf("unexpected collection sizes: %d members, %d accounts, %d cards, %d goals",
				len(snap.Members), len(snap.BankAccounts), len(snap.CreditCards), len(snap.Goals))
		}
		if len(snap.Transactions) != 30 {
			t.Fatalf("expected 30 transactions, got %d", len(snap.Transactions))
		}
	})

	t.Run("references_resolve", func(t *testing.T) {
		for _, tx := range snap.Transactions {
			if _, ok := analytics.ResolveAccount(tx.AccountID, snap.BankAccounts, snap.CreditCards); !ok {
				t.Errorf("transaction %s has dangling account %s", tx.ID, tx.AccountID)
			}
			if _, ok := analytics.FindMember(tx.MemberID, snap.Members); !ok {
				t.Errorf("transaction %s has dangling member", tx.ID)
			}
		}
	})

	t.Run("transaction_shape", func(t *testing.T) {
		opts := testOptions()
		oldest := opts.Now.AddDate(0, 0, -spanDays)
		earners := map[string]bool{snap.Members[0].ID: true, snap.Members[1].ID: true}
		ids := make(map[string]bool)

		for _, tx := range snap.Transactions {
			if ids[tx.ID] {
				t.Errorf("duplicate id %s", tx.ID)
			}
			ids[tx.ID] = true

			if tx.Date.After(opts.Now.Add(12*time.Hour)) || tx.Date.Before(oldest) {
				t.Errorf("date %s outside the generated window", tx.Date)
			}
			if tx.CurrentInstallment < 1 || tx.CurrentInstallment > tx.Installments {
				t.Errorf("invalid installment %d/%d", tx.CurrentInstallment, tx.Installments)
			}
			if !tx.Amount.IsPositive() {
				t.Errorf("amount must be positive, got %s", tx.Amount)
			}

			switch tx.Type {
			case models.TransactionTypeIncome:
				if tx.Status != models.TransactionStatusCompleted || !earners[*tx.MemberID] {
					t.Errorf("income must be completed and earned by a parent: %+v", tx)
				}
				if tx.Amount.IntPart() < 2000 || tx.Amount.IntPart() > 6999 {
					t.Errorf("income amount out of range: %s", tx.Amount)
				}
			case models.TransactionTypeExpense:
				if tx.Amount.IntPart() < 50 || tx.Amount.IntPart() > 849 {
					t.Errorf("expense amount out of range: %s", tx.Amount)
				}
				if tx.Installments > 1 {
					if src, _ := analytics.ResolveAccount(tx.AccountID, snap.BankAccounts, snap.CreditCards); src.Kind != analytics.SourceCreditCard {
						t.Error("installments are only generated on cards")
					}
				}
			default:
				t.Errorf("unexpected type %s", tx.Type)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again := Generate(testOptions())
		for i := range snap.Transactions {
			a, b := snap.Transactions[i], again.Transactions[i]
			if a.ID != b.ID || !a.Amount.Equal(b.Amount) || !a.Date.Equal(b.Date) || a.Category != b.Category {
				t.Fatalf("transaction %d differs between runs", i)
			}
		}

		other := testOptions()
		other.Seed = 8
		if Generate(other).Transactions[0].ID == snap.Transactions[0].ID {
			t.Error("different seeds should produce different ids")
		}
	})

	t.Run("zero_counts", func(t *testing.T) {
		opts := testOptions()
		opts.IncomeCount, opts.ExpenseCount = 0, 0
		if got := Generate(opts); len(got.Transactions) != 0 || len(got.Members) != 3 {
			t.Errorf("unexpected snapshot %+v", got)
		}
	})
}
