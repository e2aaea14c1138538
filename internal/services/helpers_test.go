package services

import (
	"testing"

	"github.com/caioogatalabs/dashboard-workshop/internal/store"
	"github.com/caioogatalabs/dashboard-workshop/internal/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// setupStore returns a store over a fresh database, closed when the test ends.
func setupStore(t *testing.T) (*store.FinanceStore, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	st, err := store.New(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return st, db
}
