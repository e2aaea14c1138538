package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

func setupDashboardRouter(svc *mockDashboardService, audit *mockAuditService) (*gin.Engine, *DashboardHandler) {
	dashboard := NewDashboardHandler(svc)
	filters := NewFilterHandler(svc)
	activity := NewActivityHandler(audit)

	r := gin.New()
	r.GET("/filters", filters.GetFilters)
	r.PUT("/filters", filters.SetFilters)
	r.DELETE("/filters", filters.ResetFilters)
	r.GET("/dashboard/summary", dashboard.GetSummary)
	r.GET("/dashboard/categories", dashboard.GetExpensesByCategory)
	r.GET("/dashboard/categories/:category/percentage", dashboard.GetCategoryPercentage)
	r.GET("/dashboard/category-names", dashboard.GetCategories)
	r.GET("/dashboard/upcoming", dashboard.GetUpcomingExpenses)
	r.GET("/dashboard/cards", dashboard.GetCardsOverview)
	r.GET("/dashboard/sources/:id", dashboard.ResolvePaymentSource)
	r.GET("/activity", activity.GetRecentActivity)
	return r, dashboard
}

func TestFilterHandler(t *testing.T) {
	t.Run("set stores every filter", func(t *testing.T) {
		svc := &mockDashboardService{}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "PUT", "/filters",
			`{"member_id":"`+testID+`","start_date":"2024-01-01","end_date":"2024-01-31","type":"expense","search":"  market "}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		f := svc.filters
		if f.SelectedMember == nil || *f.SelectedMember != testID {
			t.Errorf("expected member %s, got %v", testID, f.SelectedMember)
		}
		if f.TransactionType != analytics.TypeExpense || f.SearchText != "market" {
			t.Errorf("unexpected filters %+v", f)
		}
		if !f.DateRange.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start %v", f.DateRange.Start)
		}
		lastMoment := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
		if !f.DateRange.Contains(lastMoment) {
			t.Errorf("expected plain end date to include %v, range ends %v", lastMoment, f.DateRange.End)
		}
	})

	t.Run("keeps exact end timestamp", func(t *testing.T) {
		svc := &mockDashboardService{}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "PUT", "/filters", `{"end_date":"2024-01-31T12:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !svc.filters.DateRange.End.Equal(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected end %v", svc.filters.DateRange.End)
		}
		if svc.filters.TransactionType != analytics.TypeAll {
			t.Errorf("expected empty type to mean all, got %q", svc.filters.TransactionType)
		}
	})

	t.Run("allows inverted range", func(t *testing.T) {
		svc := &mockDashboardService{}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "PUT", "/filters", `{"start_date":"2024-02-01","end_date":"2024-01-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		r, _ := setupDashboardRouter(&mockDashboardService{}, &mockAuditService{})

		rec := doRequest(r, "PUT", "/filters", `{"type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		svc := &mockDashboardService{filters: analytics.Filters{SearchText: "rent", TransactionType: analytics.TypeIncome}}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "DELETE", "/filters", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		filters := parseJSON(t, rec)["filters"].(map[string]interface{})
		if filters["search_text"] != "" || filters["transaction_type"] != "all" {
			t.Errorf("expected defaults, got %v", filters)
		}
	})
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	svc := &mockDashboardService{
		getSummaryFn: func(context.Context) (*analytics.Summary, error) {
			return &analytics.Summary{
				TotalBalance: decimal.RequireFromString("1500.25"),
				Income:       decimal.NewFromInt(5000),
				Expenses:     decimal.NewFromInt(1200),
				SavingsRate:  76,
				Categories:   []analytics.CategoryShare{},
			}, nil
		},
	}
	r, _ := setupDashboardRouter(svc, &mockAuditService{})

	rec := doRequest(r, "GET", "/dashboard/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_balance"] != "1500.25" || summary["savings_rate"] != float64(76) {
		t.Errorf("unexpected summary %v", summary)
	}
}

func TestDashboardHandler_Categories(t *testing.T) {
	svc := &mockDashboardService{
		getExpensesByCategoryFn: func() ([]analytics.CategoryAmount, error) {
			return []analytics.CategoryAmount{
				{Category: "Housing", Amount: decimal.NewFromInt(800)},
				{Category: "Food", Amount: decimal.NewFromInt(300)},
			}, nil
		},
		getCategoryPercentageFn: func(category string) (float64, error) {
			if category != "Food & Drinks" {
				t.Errorf("expected decoded category, got %q", category)
			}
			return 6, nil
		},
	}
	r, _ := setupDashboardRouter(svc, &mockAuditService{})

	rec := doRequest(r, "GET", "/dashboard/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if first := categories[0].(map[string]interface{}); first["category"] != "Housing" {
		t.Errorf("expected Housing first, got %v", first)
	}

	rec = doRequest(r, "GET", "/dashboard/categories/Food%20&%20Drinks/percentage", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if pct := parseJSON(t, rec)["percentage"]; pct != float64(6) {
		t.Errorf("expected 6, got %v", pct)
	}
}

func TestDashboardHandler_CategoryPercentageKeepsExactName(t *testing.T) {
	var received string
	svc := &mockDashboardService{
		getCategoryPercentageFn: func(category string) (float64, error) {
			received = category
			return 12.5, nil
		},
	}
	r, _ := setupDashboardRouter(svc, &mockAuditService{})

	rec := doRequest(r, "GET", "/dashboard/categories/%20Food%20/percentage", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if received != " Food " {
		t.Errorf("expected category passed through unchanged, got %q", received)
	}
	if got := parseJSON(t, rec)["category"]; got != " Food " {
		t.Errorf("expected response to echo %q, got %v", " Food ", got)
	}
}

func TestDashboardHandler_GetUpcomingExpenses(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	svc := &mockDashboardService{
		getUpcomingExpensesFn: func(got time.Time) ([]models.Transaction, error) {
			if !got.Equal(now) {
				t.Errorf("expected now %v, got %v", now, got)
			}
			return []models.Transaction{{Description: "Rent"}}, nil
		},
	}
	r, h := setupDashboardRouter(svc, &mockAuditService{})
	h.now = func() time.Time { return now }

	rec := doRequest(r, "GET", "/dashboard/upcoming", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if upcoming := parseJSON(t, rec)["upcoming"].([]interface{}); len(upcoming) != 1 {
		t.Errorf("expected 1 upcoming expense, got %d", len(upcoming))
	}
}

func TestDashboardHandler_ResolvePaymentSource(t *testing.T) {
	t.Run("returns tagged source", func(t *testing.T) {
		svc := &mockDashboardService{
			resolvePaymentSourceFn: func(id string) (*analytics.PaymentSource, error) {
				return &analytics.PaymentSource{
					Kind:       analytics.SourceCreditCard,
					CreditCard: &models.CreditCard{Base: models.Base{ID: id}, Name: "Platinum Card"},
				}, nil
			},
		}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", "/dashboard/sources/"+testID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		source := parseJSON(t, rec)["source"].(map[string]interface{})
		if source["kind"] != "credit_card" {
			t.Errorf("expected credit_card, got %v", source["kind"])
		}
		if _, ok := source["bank_account"]; ok {
			t.Error("expected bank_account to be omitted")
		}
	})

	t.Run("returns 404 when unresolved", func(t *testing.T) {
		svc := &mockDashboardService{
			resolvePaymentSourceFn: func(string) (*analytics.PaymentSource, error) {
				return nil, apperrors.ErrPaymentSourceNotFound
			},
		}
		r, _ := setupDashboardRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", "/dashboard/sources/"+testID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PAYMENT_SOURCE_NOT_FOUND")
	})
}

func TestActivityHandler(t *testing.T) {
	t.Run("passes limit", func(t *testing.T) {
		audit := &mockAuditService{
			getRecentActivity: func(limit int) ([]models.AuditLog, error) {
				if limit != 5 {
					t.Errorf("expected limit 5, got %d", limit)
				}
				return []models.AuditLog{{Action: "CREATE_MEMBER"}}, nil
			},
		}
		r, _ := setupDashboardRouter(&mockDashboardService{}, audit)

		rec := doRequest(r, "GET", "/activity?limit=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects oversized limit", func(t *testing.T) {
		r, _ := setupDashboardRouter(&mockDashboardService{}, &mockAuditService{})

		rec := doRequest(r, "GET", "/activity?limit=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestParseFlexibleTime(t *testing.T) {
	if _, err := parseFlexibleTime("2024-01-15T10:30:00-03:00", "date"); err != nil {
		t.Errorf("expected RFC3339 to parse: %v", err)
	}
	if got, err := parseFlexibleTime(" 2024-01-15 ", "date"); err != nil || got.Day() != 15 {
		t.Errorf("expected plain date to parse, got %v %v", got, err)
	}
	if _, err := parseFlexibleTime("15/01/2024", "date"); err == nil {
		t.Error("expected day-first date to be rejected")
	}
	if got, err := parseOptionalTime(ptr(""), "date"); got != nil || err != nil {
		t.Errorf("expected empty value to yield nil, got %v %v", got, err)
	}
}
