package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// CreditCardHandler handles credit card requests.
type CreditCardHandler struct {
	cardService  services.CreditCardServicer
	auditService services.AuditServicer
}

// NewCreditCardHandler creates a new CreditCardHandler.
func NewCreditCardHandler(cardService services.CreditCardServicer, auditService services.AuditServicer) *CreditCardHandler {
	return &CreditCardHandler{cardService: cardService, auditService: auditService}
}

// CreateCreditCardRequest represents the request payload for creating a credit card
type CreateCreditCardRequest struct {
	Name        string           `json:"name" binding:"required,min=3,max=100"`
	HolderID    string           `json:"holder_id" binding:"required,uuid"`
	Limit       decimal.Decimal  `json:"limit" binding:"required,gt=0"`
	CurrentBill decimal.Decimal  `json:"current_bill" binding:"gte=0"`
	ClosingDay  int              `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay      int              `json:"due_day" binding:"required,min=1,max=31"`
	Theme       models.CardTheme `json:"theme" binding:"omitempty,card_theme"`
	BankName    *string          `json:"bank_name" binding:"omitempty,max=100"`
	LastDigits  *string          `json:"last_digits" binding:"omitempty,last_digits"`
}

// UpdateCreditCardRequest represents the request payload for updating a credit card
type UpdateCreditCardRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=3,max=100"`
	HolderID    *string           `json:"holder_id" binding:"omitempty,uuid"`
	Limit       *decimal.Decimal  `json:"limit" binding:"omitempty,gt=0"`
	CurrentBill *decimal.Decimal  `json:"current_bill" binding:"omitempty,gte=0"`
	ClosingDay  *int              `json:"closing_day" binding:"omitempty,min=1,max=31"`
	DueDay      *int              `json:"due_day" binding:"omitempty,min=1,max=31"`
	Theme       *models.CardTheme `json:"theme" binding:"omitempty,card_theme"`
	BankName    *string           `json:"bank_name" binding:"omitempty,max=100"`
	LastDigits  *string           `json:"last_digits" binding:"omitempty,last_digits"`
}

func overview(card *models.CreditCard) services.CardOverview {
	return services.CardOverview{
		CreditCard: *card,
		Usage:      analytics.CardUsage(*card),
		Available:  analytics.CardAvailable(*card),
	}
}

// CreateCreditCard adds a credit card
// @Summary     Create a credit card
// @Tags        cards
// @Accept      json
// @Produce     json
// @Param       request body CreateCreditCardRequest true "Card details"
// @Success     201 {object} services.CardOverview "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /credit-cards [post]
func (h *CreditCardHandler) CreateCreditCard(c *gin.Context) {
	var req CreateCreditCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	input := services.CreditCardInput{
		Name:        &req.Name,
		HolderID:    &req.HolderID,
		Limit:       &req.Limit,
		CurrentBill: &req.CurrentBill,
		ClosingDay:  &req.ClosingDay,
		DueDay:      &req.DueDay,
		BankName:    req.BankName,
		LastDigits:  req.LastDigits,
	}
	if req.Theme != "" {
		input.Theme = &req.Theme
	}

	card, err := h.cardService.CreateCreditCard(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CREDIT_CARD", "credit_card", card.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "limit": req.Limit.String()})

	c.JSON(http.StatusCreated, gin.H{"card": overview(card)})
}

// GetCreditCards lists credit cards, largest bill first
// @Summary     List credit cards
// @Tags        cards
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CreditCard] "Paginated cards"
// @Router      /credit-cards [get]
func (h *CreditCardHandler) GetCreditCards(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		invalidInput(c, err)
		return
	}

	result, err := h.cardService.GetCreditCards(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCreditCardByID returns one card with its usage figures
// @Summary     Get credit card
// @Tags        cards
// @Produce     json
// @Param       id path string true "Card ID"
// @Success     200 {object} services.CardOverview "Card"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /credit-cards/{id} [get]
func (h *CreditCardHandler) GetCreditCardByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.GetCreditCardByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": overview(card)})
}

// UpdateCreditCard changes the given fields of a card
// @Summary     Update credit card
// @Tags        cards
// @Accept      json
// @Produce     json
// @Param       id path string true "Card ID"
// @Param       request body UpdateCreditCardRequest true "Fields to change"
// @Success     200 {object} services.CardOverview "Updated card"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /credit-cards/{id} [put]
func (h *CreditCardHandler) UpdateCreditCard(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCreditCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	card, err := h.cardService.UpdateCreditCard(id, services.CreditCardInput{
		Name:        req.Name,
		HolderID:    req.HolderID,
		Limit:       req.Limit,
		CurrentBill: req.CurrentBill,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		Theme:       req.Theme,
		BankName:    req.BankName,
		LastDigits:  req.LastDigits,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CREDIT_CARD", "credit_card", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"card": overview(card)})
}

// DeleteCreditCard removes a card
// @Summary     Delete credit card
// @Tags        cards
// @Produce     json
// @Param       id path string true "Card ID"
// @Success     200 {object} MessageResponse "Card deleted"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /credit-cards/{id} [delete]
func (h *CreditCardHandler) DeleteCreditCard(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cardService.DeleteCreditCard(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CREDIT_CARD", "credit_card", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Card deleted successfully"})
}
