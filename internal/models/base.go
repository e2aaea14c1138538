package models

import (
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model managed by the store, in migration order.
func All() []interface{} {
	return []interface{}{
		&FamilyMember{},
		&BankAccount{},
		&CreditCard{},
		&Transaction{},
		&Goal{},
		&AuditLog{},
	}
}
