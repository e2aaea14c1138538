package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// DashboardHandler serves the derived dashboard views.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// GetSummary returns balance, income, expenses, savings rate and the
// category breakdown for the current filters
// @Summary     Dashboard summary
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} analytics.Summary "Summary"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetExpensesByCategory returns filtered expense totals per category
// @Summary     Expenses by category
// @Tags        dashboard
// @Produce     json
// @Success     200 {array} analytics.CategoryAmount "Largest first"
// @Router      /dashboard/categories [get]
func (h *DashboardHandler) GetExpensesByCategory(c *gin.Context) {
	categories, err := h.dashboardService.GetExpensesByCategory()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryPercentage returns one category's expenses as a share of income
// @Summary     Category percentage
// @Tags        dashboard
// @Produce     json
// @Param       category path string true "Category name"
// @Success     200 {object} map[string]interface{} "category and percentage"
// @Router      /dashboard/categories/{category}/percentage [get]
func (h *DashboardHandler) GetCategoryPercentage(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}

	pct, err := h.dashboardService.GetCategoryPercentage(category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "percentage": pct})
}

// GetCategories lists the category names in use plus the defaults
// @Summary     Category names
// @Tags        dashboard
// @Produce     json
// @Success     200 {array} string "Category names"
// @Router      /dashboard/category-names [get]
func (h *DashboardHandler) GetCategories(c *gin.Context) {
	names, err := h.dashboardService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": names})
}

// GetUpcomingExpenses lists unpaid expenses due from today on
// @Summary     Upcoming expenses
// @Tags        dashboard
// @Produce     json
// @Success     200 {array} models.Transaction "Soonest first"
// @Router      /dashboard/upcoming [get]
func (h *DashboardHandler) GetUpcomingExpenses(c *gin.Context) {
	upcoming, err := h.dashboardService.GetUpcomingExpenses(h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming})
}

// GetCardsOverview lists cards by bill with usage and available credit
// @Summary     Cards overview
// @Tags        dashboard
// @Produce     json
// @Success     200 {array} services.CardOverview "Largest bill first"
// @Router      /dashboard/cards [get]
func (h *DashboardHandler) GetCardsOverview(c *gin.Context) {
	cards, err := h.dashboardService.GetCardsOverview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// ResolvePaymentSource tells whether an account id names a bank account or
// a credit card
// @Summary     Resolve payment source
// @Tags        dashboard
// @Produce     json
// @Param       id path string true "Account or card ID"
// @Success     200 {object} analytics.PaymentSource "Resolved source"
// @Failure     404 {object} ErrorResponse "No account or card with this ID"
// @Router      /dashboard/sources/{id} [get]
func (h *DashboardHandler) ResolvePaymentSource(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	source, err := h.dashboardService.ResolvePaymentSource(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"source": source})
}
