// Package store holds the family's finance data and the dashboard's global
// filter state.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
)

// auditTable is excluded from change tracking; writing the audit trail does
// not change any derived figure.
const auditTable = "audit_logs"

// FinanceStore owns the five collections (in the database) and the global
// filter state. Every write through its database bumps Version, which lets
// callers cache derived values until the next mutation.
type FinanceStore struct {
	db      *gorm.DB
	version atomic.Uint64

	mu      sync.RWMutex
	filters analytics.Filters
}

// New wraps db and registers the change-tracking callbacks on it. Only one
// FinanceStore should be created per database handle.
func New(db *gorm.DB) (*FinanceStore, error) {
	s := &FinanceStore{db: db, filters: analytics.DefaultFilters()}

	cb := db.Callback()
	if err := cb.Create().After("gorm:create").Register("finance:bump_version_create", s.afterWrite); err != nil {
		return nil, fmt.Errorf("register create callback: %w", err)
	}
	if err := cb.Update().After("gorm:update").Register("finance:bump_version_update", s.afterWrite); err != nil {
		return nil, fmt.Errorf("register update callback: %w", err)
	}
	if err := cb.Delete().After("gorm:delete").Register("finance:bump_version_delete", s.afterWrite); err != nil {
		return nil, fmt.Errorf("register delete callback: %w", err)
	}
	return s, nil
}

func (s *FinanceStore) afterWrite(tx *gorm.DB) {
	if tx.Error != nil || tx.Statement.Table == auditTable {
		return
	}
	s.version.Add(1)
}

// DB returns the underlying database handle
func (s *FinanceStore) DB() *gorm.DB {
	return s.db
}

// Version changes whenever a collection is written
func (s *FinanceStore) Version() uint64 {
	return s.version.Load()
}

// Filters returns a copy of the current filter state
func (s *FinanceStore) Filters() analytics.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFilters(s.filters)
}

// SetFilters replaces the whole filter state
func (s *FinanceStore) SetFilters(f analytics.Filters) {
	if f.TransactionType == "" {
		f.TransactionType = analytics.TypeAll
	}
	s.mu.Lock()
	s.filters = cloneFilters(f)
	s.mu.Unlock()
}

// ResetFilters restores the initial filter state
func (s *FinanceStore) ResetFilters() {
	s.SetFilters(analytics.DefaultFilters())
}

// SetSelectedMember restricts the dashboard to one member; nil clears it
func (s *FinanceStore) SetSelectedMember(id *string) {
	s.update(func(f *analytics.Filters) { f.SelectedMember = id })
}

// SetDateRange sets the inclusive date bounds
func (s *FinanceStore) SetDateRange(r analytics.DateRange) {
	s.update(func(f *analytics.Filters) { f.DateRange = r })
}

// SetTransactionType sets the direction filter
func (s *FinanceStore) SetTransactionType(t analytics.TypeFilter) {
	s.update(func(f *analytics.Filters) { f.TransactionType = t })
}

// SetSearchText sets the free-text filter
func (s *FinanceStore) SetSearchText(text string) {
	s.update(func(f *analytics.Filters) { f.SearchText = text })
}

func (s *FinanceStore) update(fn func(*analytics.Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.filters)
	s.filters = cloneFilters(s.filters)
}

// Snapshot reads all five collections
func (s *FinanceStore) Snapshot() (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	if err := s.db.Order("date DESC").Find(&snap.Transactions).Error; err != nil {
		return snap, fmt.Errorf("load transactions: %w", err)
	}
	if err := s.db.Order("created_at").Find(&snap.Goals).Error; err != nil {
		return snap, fmt.Errorf("load goals: %w", err)
	}
	if err := s.db.Order("created_at").Find(&snap.CreditCards).Error; err != nil {
		return snap, fmt.Errorf("load credit cards: %w", err)
	}
	if err := s.db.Order("created_at").Find(&snap.BankAccounts).Error; err != nil {
		return snap, fmt.Errorf("load bank accounts: %w", err)
	}
	if err := s.db.Order("created_at").Find(&snap.Members).Error; err != nil {
		return snap, fmt.Errorf("load members: %w", err)
	}
	return snap, nil
}

// Seed inserts a generated dataset in a single transaction
func (s *FinanceStore) Seed(snap analytics.Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(snap.Members) > 0 {
			if err := tx.Create(&snap.Members).Error; err != nil {
				return fmt.Errorf("seed members: %w", err)
			}
		}
		if len(snap.BankAccounts) > 0 {
			if err := tx.Create(&snap.BankAccounts).Error; err != nil {
				return fmt.Errorf("seed bank accounts: %w", err)
			}
		}
		if len(snap.CreditCards) > 0 {
			if err := tx.Create(&snap.CreditCards).Error; err != nil {
				return fmt.Errorf("seed credit cards: %w", err)
			}
		}
		if len(snap.Goals) > 0 {
			if err := tx.Create(&snap.Goals).Error; err != nil {
				return fmt.Errorf("seed goals: %w", err)
			}
		}
		if len(snap.Transactions) > 0 {
			if err := tx.CreateInBatches(&snap.Transactions, 100).Error; err != nil {
				return fmt.Errorf("seed transactions: %w", err)
			}
		}
		return nil
	})
}

func cloneFilters(f analytics.Filters) analytics.Filters {
	out := f
	if f.SelectedMember != nil {
		id := *f.SelectedMember
		out.SelectedMember = &id
	}
	if f.DateRange.Start != nil {
		start := *f.DateRange.Start
		out.DateRange.Start = &start
	}
	if f.DateRange.End != nil {
		end := *f.DateRange.End
		out.DateRange.End = &end
	}
	return out
}
