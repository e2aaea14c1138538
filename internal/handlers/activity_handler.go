package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	auditService services.AuditServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(auditService services.AuditServicer) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// ActivityQuery limits how many entries are returned
type ActivityQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetRecentActivity returns the latest audit entries, newest first
// @Summary     Recent activity
// @Tags        activity
// @Produce     json
// @Param       limit query int false "Number of entries (default 50, max 100)"
// @Success     200 {array} models.AuditLog "Audit entries"
// @Router      /activity [get]
func (h *ActivityHandler) GetRecentActivity(c *gin.Context) {
	var q ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidInput(c, err)
		return
	}

	entries, err := h.auditService.GetRecentActivity(q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
