package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Goal is a savings target, optionally owned by one member
type Goal struct {
	Base
	Title         string          `gorm:"not null" json:"title"`
	Description   *string         `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_amount"`
	Deadline      time.Time       `gorm:"not null" json:"deadline"`
	Category      string          `gorm:"not null" json:"category"`
	MemberID      *string         `gorm:"type:varchar(36)" json:"member_id,omitempty"`
	Status        GoalStatus      `gorm:"type:varchar(16);not null" json:"status"`
}
