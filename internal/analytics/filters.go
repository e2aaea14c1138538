// Package analytics derives the dashboard figures from the family's
// transactions, accounts and cards.
//
// Every function here is pure: inputs are read, never modified, and no
// function performs I/O, logs or fails. Missing data yields zero values.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

// TypeFilter restricts transactions by direction
type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

// Valid reports whether f is a known filter value
func (f TypeFilter) Valid() bool {
	switch f {
	case TypeAll, TypeIncome, TypeExpense:
		return true
	}
	return false
}

// DateRange bounds transaction dates. Either end may be nil. Both bounds are
// inclusive and compared at full timestamp precision.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Filters is the global dashboard filter state. The zero value, like
// DefaultFilters, restricts nothing.
type Filters struct {
	SelectedMember  *string    `json:"selected_member"`
	DateRange       DateRange  `json:"date_range"`
	TransactionType TypeFilter `json:"transaction_type"`
	SearchText      string     `json:"search_text"`
}

// DefaultFilters returns the initial filter state
func DefaultFilters() Filters {
	return Filters{TransactionType: TypeAll}
}

// Matches reports whether t passes all four filter dimensions.
func (f Filters) Matches(t *models.Transaction) bool {
	// A selected member excludes transactions without a member.
	if f.SelectedMember != nil {
		if t.MemberID == nil || *t.MemberID != *f.SelectedMember {
			return false
		}
	}

	if f.TransactionType != "" && f.TransactionType != TypeAll &&
		string(t.Type) != string(f.TransactionType) {
		return false
	}

	if !f.DateRange.Contains(t.Date) {
		return false
	}

	return matchesSearch(t, f.SearchText)
}

// Key identifies the filter state, for use as a cache key.
func (f Filters) Key() string {
	var b strings.Builder
	if f.SelectedMember != nil {
		b.WriteString(*f.SelectedMember)
	}
	b.WriteByte('|')
	if f.DateRange.Start != nil {
		b.WriteString(f.DateRange.Start.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('|')
	if f.DateRange.End != nil {
		b.WriteString(f.DateRange.End.UTC().Format(time.RFC3339Nano))
	}
	fmt.Fprintf(&b, "|%s|%s", f.TransactionType, f.SearchText)
	return b.String()
}

// FilterTransactions returns the transactions matching f in their original
// order. The input slice is not modified.
func FilterTransactions(txs []models.Transaction, f Filters) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if f.Matches(&txs[i]) {
			out = append(out, txs[i])
		}
	}
	return out
}

// matchesSearch does a case-insensitive substring match of the trimmed
// search text against description or category.
func matchesSearch(t *models.Transaction, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Category), needle)
}
