package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// FilterHandler exposes the global dashboard filters.
type FilterHandler struct {
	dashboardService services.DashboardServicer
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(dashboardService services.DashboardServicer) *FilterHandler {
	return &FilterHandler{dashboardService: dashboardService}
}

// SetFiltersRequest replaces the whole filter state. Omitted fields clear
// the corresponding filter. A plain end_date includes that entire day.
type SetFiltersRequest struct {
	MemberID  *string `json:"member_id" binding:"omitempty,uuid"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Type      string  `json:"type" binding:"omitempty,type_filter"`
	Search    string  `json:"search" binding:"max=100"`
}

// GetFilters returns the current filters
// @Summary     Get filters
// @Tags        filters
// @Produce     json
// @Success     200 {object} analytics.Filters "Current filters"
// @Router      /filters [get]
func (h *FilterHandler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": h.dashboardService.GetFilters()})
}

// SetFilters replaces the current filters
// @Summary     Set filters
// @Tags        filters
// @Accept      json
// @Produce     json
// @Param       request body SetFiltersRequest true "New filter state"
// @Success     200 {object} analytics.Filters "Current filters"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /filters [put]
func (h *FilterHandler) SetFilters(c *gin.Context) {
	var req SetFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	start, err := parseOptionalTime(req.StartDate, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseOptionalTime(req.EndDate, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if end != nil {
		widened := endOfDay(*req.EndDate, *end)
		end = &widened
	}

	filters := analytics.Filters{
		SelectedMember:  req.MemberID,
		DateRange:       analytics.DateRange{Start: start, End: end},
		TransactionType: analytics.TypeFilter(req.Type),
		SearchText:      strings.TrimSpace(req.Search),
	}
	h.dashboardService.SetFilters(filters)

	c.JSON(http.StatusOK, gin.H{"filters": h.dashboardService.GetFilters()})
}

// ResetFilters clears every filter
// @Summary     Reset filters
// @Tags        filters
// @Produce     json
// @Success     200 {object} analytics.Filters "Default filters"
// @Router      /filters [delete]
func (h *FilterHandler) ResetFilters(c *gin.Context) {
	h.dashboardService.ResetFilters()
	c.JSON(http.StatusOK, gin.H{"filters": h.dashboardService.GetFilters()})
}
