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

// goalService handles savings goals.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal adds a savings goal. Status defaults to active and the saved
// amount to zero.
func (s *goalService) CreateGoal(input GoalInput) (*models.Goal, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal title is required")
	}
	if input.TargetAmount == nil || !input.TargetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}
	if input.Deadline == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deadline is required")
	}

	goal := &models.Goal{
		Title:         strings.TrimSpace(*input.Title),
		Description:   input.Description,
		TargetAmount:  *input.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      *input.Deadline,
		Category:      "Other",
		MemberID:      input.MemberID,
		Status:        models.GoalStatusActive,
	}
	if input.CurrentAmount != nil {
		goal.CurrentAmount = *input.CurrentAmount
	}
	if input.Category != nil && *input.Category != "" {
		goal.Category = *input.Category
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals lists goals by deadline, soonest first
func (s *goalService) GetGoals(page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Goal{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := s.db.Scopes(pagination.Paginate(page)).Order("deadline ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// GetGoalByID retrieves a single goal
func (s *goalService) GetGoalByID(id string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ?", id).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal merges the given fields into the goal
func (s *goalService) UpdateGoal(id string, input GoalInput) (*models.Goal, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal title cannot be empty")
		}
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		updates["target_amount"] = *input.TargetAmount
	}
	if input.CurrentAmount != nil {
		updates["current_amount"] = *input.CurrentAmount
	}
	if input.Deadline != nil {
		updates["deadline"] = *input.Deadline
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.MemberID != nil {
		updates["member_id"] = *input.MemberID
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetGoalByID(id)
}

// DeleteGoal removes a goal
func (s *goalService) DeleteGoal(id string) error {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
