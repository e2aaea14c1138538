package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/pagination"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
	"github.com/caioogatalabs/dashboard-workshop/internal/validator"
)

const (
	testID      = "0192f5c8-3b0a-7c3e-9a51-2f6d8b1e4c70"
	testOtherID = "0192f5c8-3b0a-7c3e-9a51-2f6d8b1e4c71"
)

// --- mock services ---

type mockMemberService struct {
	createMemberFn  func(input services.MemberInput) (*models.FamilyMember, error)
	getMembersFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error)
	getMemberByIDFn func(id string) (*models.FamilyMember, error)
	updateMemberFn  func(id string, input services.MemberInput) (*models.FamilyMember, error)
	deleteMemberFn  func(id string) error
}

func (m *mockMemberService) CreateMember(input services.MemberInput) (*models.FamilyMember, error) {
	if m.createMemberFn != nil {
		return m.createMemberFn(input)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockMemberService) GetMembers(page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error) {
	if m.getMembersFn != nil {
		return m.getMembersFn(page)
	}
	resp := pagination.NewPageResponse([]models.FamilyMember{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockMemberService) GetMemberByID(id string) (*models.FamilyMember, error) {
	if m.getMemberByIDFn != nil {
		return m.getMemberByIDFn(id)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockMemberService) UpdateMember(id string, input services.MemberInput) (*models.FamilyMember, error) {
	if m.updateMemberFn != nil {
		return m.updateMemberFn(id, input)
	}
	return &models.FamilyMember{}, nil
}

func (m *mockMemberService) DeleteMember(id string) error {
	if m.deleteMemberFn != nil {
		return m.deleteMemberFn(id)
	}
	return nil
}

type mockBankAccountService struct {
	createBankAccountFn  func(input services.BankAccountInput) (*models.BankAccount, error)
	getBankAccountByIDFn func(id string) (*models.BankAccount, error)
	deleteBankAccountFn  func(id string) error
}

func (m *mockBankAccountService) CreateBankAccount(input services.BankAccountInput) (*models.BankAccount, error) {
	if m.createBankAccountFn != nil {
		return m.createBankAccountFn(input)
	}
	return &models.BankAccount{}, nil
}

func (m *mockBankAccountService) GetBankAccounts(_ pagination.PageRequest) (*pagination.PageResponse[models.BankAccount], error) {
	resp := pagination.NewPageResponse([]models.BankAccount{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBankAccountService) GetBankAccountByID(id string) (*models.BankAccount, error) {
	if m.getBankAccountByIDFn != nil {
		return m.getBankAccountByIDFn(id)
	}
	return &models.BankAccount{}, nil
}

func (m *mockBankAccountService) UpdateBankAccount(_ string, _ services.BankAccountInput) (*models.BankAccount, error) {
	return &models.BankAccount{}, nil
}

func (m *mockBankAccountService) DeleteBankAccount(id string) error {
	if m.deleteBankAccountFn != nil {
		return m.deleteBankAccountFn(id)
	}
	return nil
}

type mockCreditCardService struct {
	createCreditCardFn  func(input services.CreditCardInput) (*models.CreditCard, error)
	getCreditCardByIDFn func(id string) (*models.CreditCard, error)
	updateCreditCardFn  func(id string, input services.CreditCardInput) (*models.CreditCard, error)
}

func (m *mockCreditCardService) CreateCreditCard(input services.CreditCardInput) (*models.CreditCard, error) {
	if m.createCreditCardFn != nil {
		return m.createCreditCardFn(input)
	}
	return &models.CreditCard{}, nil
}

func (m *mockCreditCardService) GetCreditCards(_ pagination.PageRequest) (*pagination.PageResponse[models.CreditCard], error) {
	resp := pagination.NewPageResponse([]models.CreditCard{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCreditCardService) GetCreditCardByID(id string) (*models.CreditCard, error) {
	if m.getCreditCardByIDFn != nil {
		return m.getCreditCardByIDFn(id)
	}
	return &models.CreditCard{}, nil
}

func (m *mockCreditCardService) UpdateCreditCard(id string, input services.CreditCardInput) (*models.CreditCard, error) {
	if m.updateCreditCardFn != nil {
		return m.updateCreditCardFn(id, input)
	}
	return &models.CreditCard{}, nil
}

func (m *mockCreditCardService) DeleteCreditCard(_ string) error {
	return nil
}

type mockGoalService struct {
	createGoalFn  func(input services.GoalInput) (*models.Goal, error)
	getGoalByIDFn func(id string) (*models.Goal, error)
	updateGoalFn  func(id string, input services.GoalInput) (*models.Goal, error)
}

func (m *mockGoalService) CreateGoal(input services.GoalInput) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(input)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) GetGoals(_ pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	resp := pagination.NewPageResponse([]models.Goal{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockGoalService) GetGoalByID(id string) (*models.Goal, error) {
	if m.getGoalByIDFn != nil {
		return m.getGoalByIDFn(id)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) UpdateGoal(id string, input services.GoalInput) (*models.Goal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(id, input)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) DeleteGoal(_ string) error {
	return nil
}

type mockTransactionService struct {
	createTransactionFn   func(input services.TransactionInput) (*models.Transaction, error)
	getTransactionsFn     func(listing services.TransactionListing) (*pagination.PageResponse[models.Transaction], error)
	getTransactionStatsFn func(query analytics.TransactionQuery) (*analytics.Stats, error)
	getTransactionByIDFn  func(id string) (*models.Transaction, error)
	updateTransactionFn   func(id string, input services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn   func(id string) error
	markAsPaidFn          func(id string) (*services.PaymentResult, error)
	exportTransactionsFn  func(listing services.TransactionListing) (*services.ExportData, error)
}

func (m *mockTransactionService) CreateTransaction(input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(listing services.TransactionListing) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(listing)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionStats(query analytics.TransactionQuery) (*analytics.Stats, error) {
	if m.getTransactionStatsFn != nil {
		return m.getTransactionStatsFn(query)
	}
	return &analytics.Stats{}, nil
}

func (m *mockTransactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, input services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

func (m *mockTransactionService) MarkAsPaid(id string) (*services.PaymentResult, error) {
	if m.markAsPaidFn != nil {
		return m.markAsPaidFn(id)
	}
	return &services.PaymentResult{Transaction: &models.Transaction{}, Scheduled: []models.Transaction{}}, nil
}

func (m *mockTransactionService) ExportTransactions(listing services.TransactionListing) (*services.ExportData, error) {
	if m.exportTransactionsFn != nil {
		return m.exportTransactionsFn(listing)
	}
	return &services.ExportData{}, nil
}

type mockDashboardService struct {
	filters                 analytics.Filters
	getSummaryFn            func(ctx context.Context) (*analytics.Summary, error)
	getExpensesByCategoryFn func() ([]analytics.CategoryAmount, error)
	getCategoryPercentageFn func(category string) (float64, error)
	getCategoriesFn         func() ([]string, error)
	getUpcomingExpensesFn   func(now time.Time) ([]models.Transaction, error)
	getCardsOverviewFn      func() ([]services.CardOverview, error)
	resolvePaymentSourceFn  func(id string) (*analytics.PaymentSource, error)
}

func (m *mockDashboardService) GetFilters() analytics.Filters {
	return m.filters
}

func (m *mockDashboardService) SetFilters(filters analytics.Filters) {
	if filters.TransactionType == "" {
		filters.TransactionType = analytics.TypeAll
	}
	m.filters = filters
}

func (m *mockDashboardService) ResetFilters() {
	m.filters = analytics.DefaultFilters()
}

func (m *mockDashboardService) GetSummary(ctx context.Context) (*analytics.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx)
	}
	return &analytics.Summary{}, nil
}

func (m *mockDashboardService) SummaryFor(ctx context.Context, _ analytics.Filters) (*analytics.Summary, error) {
	return m.GetSummary(ctx)
}

func (m *mockDashboardService) GetExpensesByCategory() ([]analytics.CategoryAmount, error) {
	if m.getExpensesByCategoryFn != nil {
		return m.getExpensesByCategoryFn()
	}
	return []analytics.CategoryAmount{}, nil
}

func (m *mockDashboardService) GetCategoryPercentage(category string) (float64, error) {
	if m.getCategoryPercentageFn != nil {
		return m.getCategoryPercentageFn(category)
	}
	return 0, nil
}

func (m *mockDashboardService) GetCategories() ([]string, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn()
	}
	return []string{}, nil
}

func (m *mockDashboardService) GetUpcomingExpenses(now time.Time) ([]models.Transaction, error) {
	if m.getUpcomingExpensesFn != nil {
		return m.getUpcomingExpensesFn(now)
	}
	return []models.Transaction{}, nil
}

func (m *mockDashboardService) GetCardsOverview() ([]services.CardOverview, error) {
	if m.getCardsOverviewFn != nil {
		return m.getCardsOverviewFn()
	}
	return []services.CardOverview{}, nil
}

func (m *mockDashboardService) ResolvePaymentSource(id string) (*analytics.PaymentSource, error) {
	if m.resolvePaymentSourceFn != nil {
		return m.resolvePaymentSourceFn(id)
	}
	return &analytics.PaymentSource{}, nil
}

type auditEntry struct {
	action     string
	resourceID string
}

type mockAuditService struct {
	entries           []auditEntry
	getRecentActivity func(limit int) ([]models.AuditLog, error)
}

func (m *mockAuditService) Log(action, _, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{action: action, resourceID: resourceID})
}

func (m *mockAuditService) GetRecentActivity(limit int) ([]models.AuditLog, error) {
	if m.getRecentActivity != nil {
		return m.getRecentActivity(limit)
	}
	return []models.AuditLog{}, nil
}

// verify interface compliance
var (
	_ services.MemberServicer      = (*mockMemberService)(nil)
	_ services.BankAccountServicer = (*mockBankAccountService)(nil)
	_ services.CreditCardServicer  = (*mockCreditCardService)(nil)
	_ services.GoalServicer        = (*mockGoalService)(nil)
	_ services.TransactionServicer = (*mockTransactionService)(nil)
	_ services.DashboardServicer   = (*mockDashboardService)(nil)
	_ services.AuditServicer       = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func ptr[T any](v T) *T { return &v }

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
