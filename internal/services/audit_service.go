package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
)

const defaultActivityLimit = 50

type auditService struct {
	db *gorm.DB
}

// NewAuditService records activity in the same volatile database as the
// finance data.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log stores one activity entry. A failed write is logged and otherwise
// ignored; the mutation it describes has already happened.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("failed to record activity",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// GetRecentActivity returns the latest entries, newest first. Limits outside
// 1..100 fall back to 50.
func (s *auditService) GetRecentActivity(limit int) ([]models.AuditLog, error) {
	if limit < 1 || limit > pagination.MaxPageSize {
		limit = defaultActivityLimit
	}
	entries := make([]models.AuditLog, 0, limit)
	if err := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

func encodeChanges(action string, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("activity changes are not serializable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
