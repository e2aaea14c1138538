package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"

	"github.com/shopspring/decimal"
)

// creditCardService handles credit card management.
type creditCardService struct {
	db *gorm.DB
}

// NewCreditCardService creates a new CreditCardServicer.
func NewCreditCardService(db *gorm.DB) CreditCardServicer {
	return &creditCardService{db: db}
}

// CreateCreditCard adds a credit card held by a family member
func (s *creditCardService) CreateCreditCard(input CreditCardInput) (*models.CreditCard, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if input.HolderID == nil || *input.HolderID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card holder is required")
	}
	if input.Limit == nil || !input.Limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card limit must be positive")
	}
	if input.ClosingDay == nil || input.DueDay == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "closing and due days are required")
	}

	card := &models.CreditCard{
		Name:        strings.TrimSpace(*input.Name),
		HolderID:    *input.HolderID,
		Limit:       *input.Limit,
		CurrentBill: decimal.Zero,
		ClosingDay:  *input.ClosingDay,
		DueDay:      *input.DueDay,
		Theme:       models.CardThemeBlack,
		BankName:    input.BankName,
		LastDigits:  input.LastDigits,
	}
	if input.CurrentBill != nil {
		card.CurrentBill = *input.CurrentBill
	}
	if input.Theme != nil {
		card.Theme = *input.Theme
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return card, nil
}

// GetCreditCards lists cards ordered by current bill, highest first
func (s *creditCardService) GetCreditCards(page pagination.PageRequest) (*pagination.PageResponse[models.CreditCard], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.CreditCard{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.CreditCard
	if err := s.db.Scopes(pagination.Paginate(page)).Order("current_bill DESC").Order("created_at ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(cards, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// GetCreditCardByID retrieves a single card
func (s *creditCardService) GetCreditCardByID(id string) (*models.CreditCard, error) {
	var card models.CreditCard
	if err := s.db.Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCreditCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCreditCard merges the given fields into the card
func (s *creditCardService) UpdateCreditCard(id string, input CreditCardInput) (*models.CreditCard, error) {
	card, err := s.GetCreditCardByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.HolderID != nil {
		updates["holder_id"] = *input.HolderID
	}
	if input.Limit != nil {
		if !input.Limit.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card limit must be positive")
		}
		updates["credit_limit"] = *input.Limit
	}
	if input.CurrentBill != nil {
		updates["current_bill"] = *input.CurrentBill
	}
	if input.ClosingDay != nil {
		updates["closing_day"] = *input.ClosingDay
	}
	if input.DueDay != nil {
		updates["due_day"] = *input.DueDay
	}
	if input.Theme != nil {
		updates["theme"] = *input.Theme
	}
	if input.BankName != nil {
		updates["bank_name"] = *input.BankName
	}
	if input.LastDigits != nil {
		updates["last_digits"] = *input.LastDigits
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(card).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetCreditCardByID(id)
}

// DeleteCreditCard removes a card. Transactions charged to it keep the now
// dangling reference.
func (s *creditCardService) DeleteCreditCard(id string) error {
	card, err := s.GetCreditCardByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(card).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
