package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
	formatter          *export.Formatter
	now                func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler. The formatter
// renders amounts in CSV exports.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	auditService services.AuditServicer,
	formatter *export.Formatter,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		auditService:       auditService,
		formatter:          formatter,
		now:                time.Now,
	}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Type               models.TransactionType    `json:"type" binding:"required,transaction_type"`
	Amount             decimal.Decimal           `json:"amount" binding:"required,gt=0"`
	Description        string                    `json:"description" binding:"required,min=3,max=200"`
	Category           string                    `json:"category" binding:"required,max=50"`
	Date               *string                   `json:"date"`
	AccountID          string                    `json:"account_id" binding:"required,uuid"`
	MemberID           *string                   `json:"member_id" binding:"omitempty,uuid"`
	Installments       *int                      `json:"installments" binding:"omitempty,min=1,max=72"`
	CurrentInstallment *int                      `json:"current_installment" binding:"omitempty,min=1,max=72"`
	Status             *models.TransactionStatus `json:"status" binding:"omitempty,transaction_status"`
	IsRecurring        *bool                     `json:"is_recurring"`
	RecurringPeriod    *models.RecurringPeriod   `json:"recurring_period" binding:"omitempty,recurring_period"`
	IsPaid             *bool                     `json:"is_paid"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	Type               *models.TransactionType   `json:"type" binding:"omitempty,transaction_type"`
	Amount             *decimal.Decimal          `json:"amount" binding:"omitempty,gt=0"`
	Description        *string                   `json:"description" binding:"omitempty,min=3,max=200"`
	Category           *string                   `json:"category" binding:"omitempty,min=1,max=50"`
	Date               *string                   `json:"date"`
	AccountID          *string                   `json:"account_id" binding:"omitempty,uuid"`
	MemberID           *string                   `json:"member_id" binding:"omitempty,uuid|len=0"`
	Installments       *int                      `json:"installments" binding:"omitempty,min=1,max=72"`
	CurrentInstallment *int                      `json:"current_installment" binding:"omitempty,min=1,max=72"`
	Status             *models.TransactionStatus `json:"status" binding:"omitempty,transaction_status"`
	IsRecurring        *bool                     `json:"is_recurring"`
	RecurringPeriod    *models.RecurringPeriod   `json:"recurring_period" binding:"omitempty,recurring_period"`
	IsPaid             *bool                     `json:"is_paid"`
}

// TransactionQueryParams narrows the filtered transaction list
type TransactionQueryParams struct {
	Type      string `form:"type" binding:"omitempty,transaction_type"`
	Category  string `form:"category" binding:"max=50"`
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	MemberID  string `form:"member_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,transaction_status"`
	Search    string `form:"search" binding:"max=100"`
}

// TransactionListParams adds ordering and paging to TransactionQueryParams
type TransactionListParams struct {
	TransactionQueryParams
	pagination.PageRequest
	Sort      string `form:"sort" binding:"omitempty,sort_field"`
	Direction string `form:"direction" binding:"omitempty,sort_direction"`
}

func (p TransactionQueryParams) query() analytics.TransactionQuery {
	return analytics.TransactionQuery{
		Type:      models.TransactionType(p.Type),
		Category:  p.Category,
		AccountID: p.AccountID,
		MemberID:  p.MemberID,
		Status:    models.TransactionStatus(p.Status),
		Search:    strings.TrimSpace(p.Search),
	}
}

func (p TransactionListParams) listing() services.TransactionListing {
	return services.TransactionListing{
		Query:     p.query(),
		Sort:      analytics.SortField(p.Sort),
		Direction: analytics.SortDirection(p.Direction),
		Page:      p.PageRequest,
	}
}

// CreateTransaction records a transaction against a bank account or card
// @Summary     Create transaction
// @Description Record an income or expense. Installments, status and date default to 1/1, completed and now.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown account/member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	date, err := parseOptionalTime(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(services.TransactionInput{
		Type:               &req.Type,
		Amount:             &req.Amount,
		Description:        &req.Description,
		Category:           &req.Category,
		Date:               date,
		AccountID:          &req.AccountID,
		MemberID:           req.MemberID,
		Installments:       req.Installments,
		CurrentInstallment: req.CurrentInstallment,
		Status:             req.Status,
		IsRecurring:        req.IsRecurring,
		RecurringPeriod:    req.RecurringPeriod,
		IsPaid:             req.IsPaid,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", tx.ID, c.ClientIP(),
		map[string]interface{}{"type": tx.Type, "amount": tx.Amount.String(), "account_id": tx.AccountID})

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// GetTransactions lists transactions matching the global filters and the query
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       type       query string false "income or expense"
// @Param       category   query string false "Exact category"
// @Param       account_id query string false "Bank account or card ID"
// @Param       member_id  query string false "Member ID"
// @Param       status     query string false "completed, pending or cancelled"
// @Param       search     query string false "Description or category substring"
// @Param       sort       query string false "date, amount, description or category"
// @Param       direction  query string false "asc or desc (default desc)"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var params TransactionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		invalidInput(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(params.listing())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionStats totals the listing without paging it
// @Summary     Transaction statistics
// @Tags        transactions
// @Produce     json
// @Param       type       query string false "income or expense"
// @Param       category   query string false "Exact category"
// @Param       account_id query string false "Bank account or card ID"
// @Param       member_id  query string false "Member ID"
// @Param       status     query string false "completed, pending or cancelled"
// @Param       search     query string false "Description or category substring"
// @Success     200 {object} analytics.Stats "Totals"
// @Router      /transactions/stats [get]
func (h *TransactionHandler) GetTransactionStats(c *gin.Context) {
	var params TransactionQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		invalidInput(c, err)
		return
	}

	stats, err := h.transactionService.GetTransactionStats(params.query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ExportTransactions downloads the current listing as CSV
// @Summary     Export transactions
// @Tags        transactions
// @Produce     text/csv
// @Param       type       query string false "income or expense"
// @Param       category   query string false "Exact category"
// @Param       account_id query string false "Bank account or card ID"
// @Param       member_id  query string false "Member ID"
// @Param       status     query string false "completed, pending or cancelled"
// @Param       search     query string false "Description or category substring"
// @Param       sort       query string false "date, amount, description or category"
// @Param       direction  query string false "asc or desc (default desc)"
// @Success     200 {file} file "CSV attachment"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	var params TransactionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		invalidInput(c, err)
		return
	}

	data, err := h.transactionService.ExportTransactions(params.listing())
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, data.Transactions, data.Snapshot, h.formatter); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(h.now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetTransactionByID returns one transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction changes the given fields of a transaction
// @Summary     Update transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	date, err := parseOptionalTime(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.UpdateTransaction(id, services.TransactionInput{
		Type:               req.Type,
		Amount:             req.Amount,
		Description:        req.Description,
		Category:           req.Category,
		Date:               date,
		AccountID:          req.AccountID,
		MemberID:           req.MemberID,
		Installments:       req.Installments,
		CurrentInstallment: req.CurrentInstallment,
		Status:             req.Status,
		IsRecurring:        req.IsRecurring,
		RecurringPeriod:    req.RecurringPeriod,
		IsPaid:             req.IsPaid,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction removes a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

// MarkAsPaid settles a transaction and schedules its next occurrence
// @Summary     Mark transaction as paid
// @Description Completes the transaction and creates the next installment or recurring occurrence, if any.
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.PaymentResult "Paid transaction and scheduled follow-ups"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction already paid"
// @Router      /transactions/{id}/pay [post]
func (h *TransactionHandler) MarkAsPaid(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.MarkAsPaid(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("PAY_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"scheduled": len(result.Scheduled)})

	c.JSON(http.StatusOK, result)
}
