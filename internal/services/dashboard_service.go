package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/store"
)

// dashboardService computes the derived dashboard views from the store.
type dashboardService struct {
	store *store.FinanceStore
}

// NewDashboardService creates a DashboardServicer that recomputes every view
// on each call.
func NewDashboardService(st *store.FinanceStore) DashboardServicer {
	return &dashboardService{store: st}
}

// GetFilters returns the global filter state
func (s *dashboardService) GetFilters() analytics.Filters {
	return s.store.Filters()
}

// SetFilters replaces the global filter state
func (s *dashboardService) SetFilters(filters analytics.Filters) {
	s.store.SetFilters(filters)
}

// ResetFilters restores the initial filter state
func (s *dashboardService) ResetFilters() {
	s.store.ResetFilters()
}

// GetSummary computes the headline figures for the current filters
func (s *dashboardService) GetSummary(ctx context.Context) (*analytics.Summary, error) {
	return s.SummaryFor(ctx, s.store.Filters())
}

// SummaryFor computes the headline figures for the given filters, regardless
// of the global filter state.
func (s *dashboardService) SummaryFor(ctx context.Context, filters analytics.Filters) (*analytics.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(snap, filters)
	return &summary, nil
}

// GetExpensesByCategory returns the category breakdown of filtered expenses
func (s *dashboardService) GetExpensesByCategory() ([]analytics.CategoryAmount, error) {
	txs, err := s.filtered()
	if err != nil {
		return nil, err
	}
	breakdown := analytics.ExpensesByCategory(txs)
	if breakdown == nil {
		breakdown = []analytics.CategoryAmount{}
	}
	return breakdown, nil
}

// GetCategoryPercentage returns the category's share of filtered income
func (s *dashboardService) GetCategoryPercentage(category string) (float64, error) {
	txs, err := s.filtered()
	if err != nil {
		return 0, err
	}
	return analytics.CategoryPercentage(category, txs), nil
}

// GetCategories lists every category in use plus the defaults, ignoring
// filters
func (s *dashboardService) GetCategories() ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.CategoryNames(snap.Transactions), nil
}

// GetUpcomingExpenses lists unpaid expenses due from today on. Filters do
// not apply.
func (s *dashboardService) GetUpcomingExpenses(now time.Time) ([]models.Transaction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.UpcomingExpenses(snap.Transactions, now), nil
}

// GetCardsOverview lists cards by current bill with usage figures
func (s *dashboardService) GetCardsOverview() ([]CardOverview, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sorted := analytics.SortCardsByBill(snap.CreditCards)
	out := make([]CardOverview, len(sorted))
	for i, c := range sorted {
		out[i] = CardOverview{
			CreditCard: c,
			Usage:      analytics.CardUsage(c),
			Available:  analytics.CardAvailable(c),
		}
	}
	return out, nil
}

// ResolvePaymentSource tells whether id names a bank account or a card
func (s *dashboardService) ResolvePaymentSource(id string) (*analytics.PaymentSource, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	src, ok := analytics.ResolveAccount(id, snap.BankAccounts, snap.CreditCards)
	if !ok {
		return nil, apperrors.ErrPaymentSourceNotFound
	}
	return &src, nil
}

func (s *dashboardService) snapshot() (analytics.Snapshot, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return snap, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snap, nil
}

func (s *dashboardService) filtered() ([]models.Transaction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.FilterTransactions(snap.Transactions, s.store.Filters()), nil
}

// cachedDashboardService memoizes the summary until the store changes or the
// filters move. Concurrent misses for the same key share one computation.
type cachedDashboardService struct {
	DashboardServicer
	store *store.FinanceStore

	group singleflight.Group
	mu    sync.Mutex
	key   string
	value *analytics.Summary
}

// NewCachedDashboardService wraps next with a summary cache keyed on the
// store version and the filter state.
func NewCachedDashboardService(next DashboardServicer, st *store.FinanceStore) DashboardServicer {
	return &cachedDashboardService{DashboardServicer: next, store: st}
}

// GetSummary returns the cached summary when nothing changed since it was
// computed. The filters are read once; the key and the computation share
// that copy.
func (s *cachedDashboardService) GetSummary(ctx context.Context) (*analytics.Summary, error) {
	filters := s.store.Filters()
	key := fmt.Sprintf("%d|%s", s.store.Version(), filters.Key())

	s.mu.Lock()
	if s.value != nil && s.key == key {
		v := s.value
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		summary, err := s.DashboardServicer.SummaryFor(ctx, filters)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.key, s.value = key, summary
		s.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.Summary), nil
}
