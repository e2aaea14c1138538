package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// BankAccountHandler handles bank account requests.
type BankAccountHandler struct {
	accountService services.BankAccountServicer
	auditService   services.AuditServicer
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(accountService services.BankAccountServicer, auditService services.AuditServicer) *BankAccountHandler {
	return &BankAccountHandler{accountService: accountService, auditService: auditService}
}

// CreateBankAccountRequest represents the request payload for creating a bank account
type CreateBankAccountRequest struct {
	Name          string                  `json:"name" binding:"required,min=3,max=100"`
	HolderID      string                  `json:"holder_id" binding:"required,uuid"`
	Balance       decimal.Decimal         `json:"balance" binding:"gte=0"`
	BankName      *string                 `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber *string                 `json:"account_number" binding:"omitempty,max=50"`
	Agency        *string                 `json:"agency" binding:"omitempty,max=20"`
	AccountType   *models.BankAccountType `json:"account_type" binding:"omitempty,bank_account_type"`
}

// UpdateBankAccountRequest represents the request payload for updating a bank account
type UpdateBankAccountRequest struct {
	Name          *string                 `json:"name" binding:"omitempty,min=3,max=100"`
	HolderID      *string                 `json:"holder_id" binding:"omitempty,uuid"`
	Balance       *decimal.Decimal        `json:"balance" binding:"omitempty,gte=0"`
	BankName      *string                 `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber *string                 `json:"account_number" binding:"omitempty,max=50"`
	Agency        *string                 `json:"agency" binding:"omitempty,max=20"`
	AccountType   *models.BankAccountType `json:"account_type" binding:"omitempty,bank_account_type"`
}

// CreateBankAccount adds a bank account
// @Summary     Create a bank account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateBankAccountRequest true "Account details"
// @Success     201 {object} models.BankAccount "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts [post]
func (h *BankAccountHandler) CreateBankAccount(c *gin.Context) {
	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	account, err := h.accountService.CreateBankAccount(services.BankAccountInput{
		Name:          &req.Name,
		HolderID:      &req.HolderID,
		Balance:       &req.Balance,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Agency:        req.Agency,
		AccountType:   req.AccountType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_BANK_ACCOUNT", "bank_account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "balance": req.Balance.String()})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetBankAccounts lists bank accounts
// @Summary     List bank accounts
// @Tags        accounts
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BankAccount] "Paginated accounts"
// @Router      /bank-accounts [get]
func (h *BankAccountHandler) GetBankAccounts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		invalidInput(c, err)
		return
	}

	result, err := h.accountService.GetBankAccounts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBankAccountByID returns one bank account
// @Summary     Get bank account
// @Tags        accounts
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} models.BankAccount "Account"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /bank-accounts/{id} [get]
func (h *BankAccountHandler) GetBankAccountByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetBankAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateBankAccount changes the given fields of a bank account
// @Summary     Update bank account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id path string true "Account ID"
// @Param       request body UpdateBankAccountRequest true "Fields to change"
// @Success     200 {object} models.BankAccount "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /bank-accounts/{id} [put]
func (h *BankAccountHandler) UpdateBankAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	account, err := h.accountService.UpdateBankAccount(id, services.BankAccountInput{
		Name:          req.Name,
		HolderID:      req.HolderID,
		Balance:       req.Balance,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Agency:        req.Agency,
		AccountType:   req.AccountType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_BANK_ACCOUNT", "bank_account", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteBankAccount removes a bank account
// @Summary     Delete bank account
// @Tags        accounts
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /bank-accounts/{id} [delete]
func (h *BankAccountHandler) DeleteBankAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteBankAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BANK_ACCOUNT", "bank_account", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
