package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
)

// MemberInput carries the fields of a family member. On update, nil fields
// are left unchanged.
type MemberInput struct {
	Name          *string
	Role          *string
	AvatarURL     *string
	Email         *string
	MonthlyIncome *decimal.Decimal
}

// MemberServicer defines the contract for family member management.
type MemberServicer interface {
	CreateMember(input MemberInput) (*models.FamilyMember, error)
	GetMembers(page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error)
	GetMemberByID(id string) (*models.FamilyMember, error)
	UpdateMember(id string, input MemberInput) (*models.FamilyMember, error)
	DeleteMember(id string) error
}

// BankAccountInput carries the fields of a bank account. On update, nil
// fields are left unchanged.
type BankAccountInput struct {
	Name          *string
	HolderID      *string
	Balance       *decimal.Decimal
	BankName      *string
	AccountNumber *string
	Agency        *string
	AccountType   *models.BankAccountType
}

// BankAccountServicer defines the contract for bank account management.
type BankAccountServicer interface {
	CreateBankAccount(input BankAccountInput) (*models.BankAccount, error)
	GetBankAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.BankAccount], error)
	GetBankAccountByID(id string) (*models.BankAccount, error)
	UpdateBankAccount(id string, input BankAccountInput) (*models.BankAccount, error)
	DeleteBankAccount(id string) error
}

// CreditCardInput carries the fields of a credit card. On update, nil
// fields are left unchanged.
type CreditCardInput struct {
	Name        *string
	HolderID    *string
	Limit       *decimal.Decimal
	CurrentBill *decimal.Decimal
	ClosingDay  *int
	DueDay      *int
	Theme       *models.CardTheme
	BankName    *string
	LastDigits  *string
}

// CreditCardServicer defines the contract for credit card management.
type CreditCardServicer interface {
	CreateCreditCard(input CreditCardInput) (*models.CreditCard, error)
	GetCreditCards(page pagination.PageRequest) (*pagination.PageResponse[models.CreditCard], error)
	GetCreditCardByID(id string) (*models.CreditCard, error)
	UpdateCreditCard(id string, input CreditCardInput) (*models.CreditCard, error)
	DeleteCreditCard(id string) error
}

// GoalInput carries the fields of a savings goal. On update, nil fields are
// left unchanged.
type GoalInput struct {
	Title         *string
	Description   *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Deadline      *time.Time
	Category      *string
	MemberID      *string
	Status        *models.GoalStatus
}

// GoalServicer defines the contract for savings goal management.
type GoalServicer interface {
	CreateGoal(input GoalInput) (*models.Goal, error)
	GetGoals(page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(id string) (*models.Goal, error)
	UpdateGoal(id string, input GoalInput) (*models.Goal, error)
	DeleteGoal(id string) error
}

// TransactionInput carries the fields of a transaction. On update, nil
// fields are left unchanged.
type TransactionInput struct {
	Type               *models.TransactionType
	Amount             *decimal.Decimal
	Description        *string
	Category           *string
	Date               *time.Time
	AccountID          *string
	MemberID           *string // on update, "" clears the member
	Installments       *int
	CurrentInstallment *int
	Status             *models.TransactionStatus
	IsRecurring        *bool
	RecurringPeriod    *models.RecurringPeriod
	IsPaid             *bool
}

// TransactionListing selects, orders and pages transactions on top of the
// global filters.
type TransactionListing struct {
	Query     analytics.TransactionQuery
	Sort      analytics.SortField
	Direction analytics.SortDirection
	Page      pagination.PageRequest
}

// TransactionServicer defines the contract for transaction management.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransactions(listing TransactionListing) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionStats(query analytics.TransactionQuery) (*analytics.Stats, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(id string) error
	MarkAsPaid(id string) (*PaymentResult, error)
	ExportTransactions(listing TransactionListing) (*ExportData, error)
}

// PaymentResult is a paid transaction and the follow-ups scheduled for it.
type PaymentResult struct {
	Transaction *models.Transaction  `json:"transaction"`
	Scheduled   []models.Transaction `json:"scheduled"`
}

// ExportData is a listing together with the collections needed to label it.
type ExportData struct {
	Transactions []models.Transaction
	Snapshot     analytics.Snapshot
}

// CardOverview is a credit card with its derived usage figures.
type CardOverview struct {
	models.CreditCard
	Usage     float64         `json:"usage"`
	Available decimal.Decimal `json:"available"`
}

// DashboardServicer defines the contract for the derived dashboard views.
type DashboardServicer interface {
	GetFilters() analytics.Filters
	SetFilters(filters analytics.Filters)
	ResetFilters()
	GetSummary(ctx context.Context) (*analytics.Summary, error)
	SummaryFor(ctx context.Context, filters analytics.Filters) (*analytics.Summary, error)
	GetExpensesByCategory() ([]analytics.CategoryAmount, error)
	GetCategoryPercentage(category string) (float64, error)
	GetCategories() ([]string, error)
	GetUpcomingExpenses(now time.Time) ([]models.Transaction, error)
	GetCardsOverview() ([]CardOverview, error)
	ResolvePaymentSource(id string) (*analytics.PaymentSource, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	GetRecentActivity(limit int) ([]models.AuditLog, error)
}
