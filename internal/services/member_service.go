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

// memberService handles family member management.
type memberService struct {
	db *gorm.DB
}

// NewMemberService creates a new MemberServicer.
func NewMemberService(db *gorm.DB) MemberServicer {
	return &memberService{db: db}
}

// CreateMember adds a family member
func (s *memberService) CreateMember(input MemberInput) (*models.FamilyMember, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member name is required")
	}
	if input.Role == nil || strings.TrimSpace(*input.Role) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member role is required")
	}

	member := &models.FamilyMember{
		Name:  strings.TrimSpace(*input.Name),
		Role:  strings.TrimSpace(*input.Role),
		Email: input.Email,
	}
	if input.AvatarURL != nil {
		member.AvatarURL = *input.AvatarURL
	}
	if input.MonthlyIncome != nil {
		member.MonthlyIncome = decimal.NewNullDecimal(*input.MonthlyIncome)
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// GetMembers lists family members in the order they were added
func (s *memberService) GetMembers(page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.FamilyMember{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var members []models.FamilyMember
	if err := s.db.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(members, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// GetMemberByID retrieves a single member
func (s *memberService) GetMemberByID(id string) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := s.db.Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// UpdateMember merges the given fields into the member
func (s *memberService) UpdateMember(id string, input MemberInput) (*models.FamilyMember, error) {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		updates["role"] = strings.TrimSpace(*input.Role)
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.MonthlyIncome != nil {
		updates["monthly_income"] = decimal.NewNullDecimal(*input.MonthlyIncome)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetMemberByID(id)
}

// DeleteMember removes a member. Transactions keep their member id.
func (s *memberService) DeleteMember(id string) error {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(member).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
