package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/store"
)

// transactionService handles transaction management. Listings honour the
// store's global filters.
type transactionService struct {
	db    *gorm.DB
	store *store.FinanceStore
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st *store.FinanceStore) TransactionServicer {
	return &transactionService{db: st.DB(), store: st}
}

// CreateTransaction records a transaction. Installments and current
// installment default to 1, status to completed and date to now. The
// account id must resolve to a bank account or a credit card.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if input.Type == nil || (*input.Type != models.TransactionTypeIncome && *input.Type != models.TransactionTypeExpense) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if input.Amount == nil || !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.AccountID == nil || *input.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}

	tx := &models.Transaction{
		Type:               *input.Type,
		Amount:             *input.Amount,
		Description:        strings.TrimSpace(*input.Description),
		Category:           *input.Category,
		Date:               time.Now(),
		AccountID:          *input.AccountID,
		MemberID:           input.MemberID,
		Installments:       1,
		CurrentInstallment: 1,
		Status:             models.TransactionStatusCompleted,
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}
	if input.Installments != nil {
		tx.Installments = *input.Installments
	}
	if input.CurrentInstallment != nil {
		tx.CurrentInstallment = *input.CurrentInstallment
	}
	if input.Status != nil {
		tx.Status = *input.Status
	}
	if input.IsPaid != nil {
		tx.IsPaid = *input.IsPaid
	}
	if input.IsRecurring != nil {
		tx.IsRecurring = *input.IsRecurring
	}
	setRecurrence(tx, input.RecurringPeriod)

	if err := validateInstallments(tx); err != nil {
		return nil, err
	}
	if err := s.checkReferences(tx); err != nil {
		return nil, err
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Debugw("transaction created", "transaction_id", tx.ID, "type", tx.Type, "amount", tx.Amount.String())
	return tx, nil
}

// GetTransactions applies the global filters, then the listing's query,
// sort order and page.
func (s *transactionService) GetTransactions(listing TransactionListing) (*pagination.PageResponse[models.Transaction], error) {
	txs, err := s.listing(listing)
	if err != nil {
		return nil, err
	}
	resp := pagination.PageSlice(txs, listing.Page)
	return &resp, nil
}

// GetTransactionStats totals the filtered listing regardless of status
func (s *transactionService) GetTransactionStats(query analytics.TransactionQuery) (*analytics.Stats, error) {
	txs, err := s.filtered()
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeStats(analytics.ApplyQuery(txs, query))
	return &stats, nil
}

// GetTransactionByID retrieves a single transaction
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// UpdateTransaction merges the given fields into the transaction and
// refreshes its update timestamp.
func (s *transactionService) UpdateTransaction(id string, input TransactionInput) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	merged := *tx
	if input.Type != nil {
		if *input.Type != models.TransactionTypeIncome && *input.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		updates["type"] = *input.Type
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *input.Amount
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description cannot be empty")
		}
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category cannot be empty")
		}
		updates["category"] = *input.Category
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.AccountID != nil {
		merged.AccountID = *input.AccountID
		updates["account_id"] = *input.AccountID
	}
	if input.MemberID != nil {
		if *input.MemberID == "" {
			merged.MemberID = nil
			updates["member_id"] = nil
		} else {
			merged.MemberID = input.MemberID
			updates["member_id"] = *input.MemberID
		}
	}
	if input.Installments != nil {
		merged.Installments = *input.Installments
		updates["installments"] = *input.Installments
	}
	if input.CurrentInstallment != nil {
		merged.CurrentInstallment = *input.CurrentInstallment
		updates["current_installment"] = *input.CurrentInstallment
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.IsPaid != nil {
		updates["is_paid"] = *input.IsPaid
	}
	if input.IsRecurring != nil {
		merged.IsRecurring = *input.IsRecurring
		updates["is_recurring"] = *input.IsRecurring
	}
	if input.IsRecurring != nil || input.RecurringPeriod != nil {
		setRecurrence(&merged, input.RecurringPeriod)
		updates["recurring_period"] = merged.RecurringPeriod
	}

	if len(updates) == 0 {
		return tx, nil
	}

	if err := validateInstallments(&merged); err != nil {
		return nil, err
	}
	if input.AccountID != nil || input.MemberID != nil {
		if err := s.checkReferences(&merged); err != nil {
			return nil, err
		}
	}

	updates["updated_at"] = time.Now()
	if err := s.db.Model(tx).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(id)
}

// DeleteTransaction removes a transaction
func (s *transactionService) DeleteTransaction(id string) error {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MarkAsPaid settles a transaction and, in the same database transaction,
// schedules its next recurrence and next installment.
func (s *transactionService) MarkAsPaid(id string) (*PaymentResult, error) {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}
	if tx.IsPaid {
		return nil, apperrors.ErrTransactionAlreadyPaid
	}

	scheduled := analytics.NextOccurrences(*tx)
	now := time.Now()

	err = s.db.Transaction(func(dbTx *gorm.DB) error {
		updates := map[string]interface{}{
			"is_paid":    true,
			"status":     models.TransactionStatusCompleted,
			"updated_at": now,
		}
		if err := dbTx.Model(tx).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range scheduled {
			if err := dbTx.Create(&scheduled[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paid, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("transaction paid", "transaction_id", id, "scheduled", len(scheduled))
	if scheduled == nil {
		scheduled = []models.Transaction{}
	}
	return &PaymentResult{Transaction: paid, Scheduled: scheduled}, nil
}

// ExportTransactions returns the whole listing (no paging) with the
// collections needed to name accounts and members.
func (s *transactionService) ExportTransactions(listing TransactionListing) (*ExportData, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	txs := analytics.FilterTransactions(snap.Transactions, s.store.Filters())
	txs = analytics.ApplyQuery(txs, listing.Query)
	txs = sortListing(txs, listing)
	return &ExportData{Transactions: txs, Snapshot: snap}, nil
}

func (s *transactionService) filtered() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Order("date DESC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return analytics.FilterTransactions(txs, s.store.Filters()), nil
}

func (s *transactionService) listing(listing TransactionListing) ([]models.Transaction, error) {
	txs, err := s.filtered()
	if err != nil {
		return nil, err
	}
	return sortListing(analytics.ApplyQuery(txs, listing.Query), listing), nil
}

// sortListing orders by date, newest first, unless the listing says otherwise.
func sortListing(txs []models.Transaction, listing TransactionListing) []models.Transaction {
	field, dir := listing.Sort, listing.Direction
	if field == "" {
		field = analytics.SortByDate
	}
	if dir == "" {
		dir = analytics.SortDesc
	}
	return analytics.SortTransactions(txs, field, dir)
}

// checkReferences verifies the account and member ids point at existing
// records at write time. Later deletions may still leave them dangling.
func (s *transactionService) checkReferences(tx *models.Transaction) error {
	var count int64
	if err := s.db.Model(&models.BankAccount{}).Where("id = ?", tx.AccountID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		if err := s.db.Model(&models.CreditCard{}).Where("id = ?", tx.AccountID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if count == 0 {
		return apperrors.ErrInvalidPaymentSource
	}

	if tx.MemberID != nil {
		if err := s.db.Model(&models.FamilyMember{}).Where("id = ?", *tx.MemberID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrInvalidMemberReference
		}
	}
	return nil
}

// setRecurrence keeps IsRecurring and RecurringPeriod consistent. A recurring
// transaction without a period repeats monthly.
func setRecurrence(tx *models.Transaction, period *models.RecurringPeriod) {
	if period != nil {
		p := *period
		tx.RecurringPeriod = &p
	}
	if !tx.IsRecurring {
		tx.RecurringPeriod = nil
		return
	}
	if tx.RecurringPeriod == nil {
		monthly := models.RecurringPeriodMonthly
		tx.RecurringPeriod = &monthly
	}
}

func validateInstallments(tx *models.Transaction) error {
	if tx.Installments < 1 || tx.CurrentInstallment < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "installments must be at least 1")
	}
	if tx.CurrentInstallment > tx.Installments {
		return apperrors.ErrInvalidInstallment
	}
	return nil
}
