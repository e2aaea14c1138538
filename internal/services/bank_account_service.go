package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
)

// bankAccountService handles bank account management.
type bankAccountService struct {
	db *gorm.DB
}

// NewBankAccountService creates a new BankAccountServicer.
func NewBankAccountService(db *gorm.DB) BankAccountServicer {
	return &bankAccountService{db: db}
}

// CreateBankAccount adds a bank account held by a family member
func (s *bankAccountService) CreateBankAccount(input BankAccountInput) (*models.BankAccount, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if input.HolderID == nil || *input.HolderID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account holder is required")
	}
	if input.Balance == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "balance is required")
	}

	account := &models.BankAccount{
		Name:          strings.TrimSpace(*input.Name),
		HolderID:      *input.HolderID,
		Balance:       *input.Balance,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		Agency:        input.Agency,
		AccountType:   input.AccountType,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetBankAccounts lists bank accounts in the order they were added
func (s *bankAccountService) GetBankAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.BankAccount], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.BankAccount{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.BankAccount
	if err := s.db.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// GetBankAccountByID retrieves a single bank account
func (s *bankAccountService) GetBankAccountByID(id string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateBankAccount merges the given fields into the account
func (s *bankAccountService) UpdateBankAccount(id string, input BankAccountInput) (*models.BankAccount, error) {
	account, err := s.GetBankAccountByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.HolderID != nil {
		updates["holder_id"] = *input.HolderID
	}
	if input.Balance != nil {
		updates["balance"] = *input.Balance
	}
	if input.BankName != nil {
		updates["bank_name"] = *input.BankName
	}
	if input.AccountNumber != nil {
		updates["account_number"] = *input.AccountNumber
	}
	if input.Agency != nil {
		updates["agency"] = *input.Agency
	}
	if input.AccountType != nil {
		updates["account_type"] = *input.AccountType
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetBankAccountByID(id)
}

// DeleteBankAccount removes an account. Transactions booked on it keep the
// now dangling reference.
func (s *bankAccountService) DeleteBankAccount(id string) error {
	account, err := s.GetBankAccountByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
