// Package server assembles the HTTP API: services, middleware and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/caioogatalabs/dashboard-workshop/internal/docs" // swagger docs
	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/handlers"
	"github.com/caioogatalabs/dashboard-workshop/internal/middleware"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
	"github.com/caioogatalabs/dashboard-workshop/internal/store"
	"github.com/caioogatalabs/dashboard-workshop/internal/validator"
)

// Services bundles everything the routes call into
type Services struct {
	Members      services.MemberServicer
	BankAccounts services.BankAccountServicer
	CreditCards  services.CreditCardServicer
	Goals        services.GoalServicer
	Transactions services.TransactionServicer
	Dashboard    services.DashboardServicer
	Audit        services.AuditServicer
}

// NewServices wires the services on top of st. With cacheSummary the
// dashboard summary is reused until the data or the filters change.
func NewServices(st *store.FinanceStore, cacheSummary bool) Services {
	db := st.DB()

	dashboard := services.NewDashboardService(st)
	if cacheSummary {
		dashboard = services.NewCachedDashboardService(dashboard, st)
	}

	return Services{
		Members:      services.NewMemberService(db),
		BankAccounts: services.NewBankAccountService(db),
		CreditCards:  services.NewCreditCardService(db),
		Goals:        services.NewGoalService(db),
		Transactions: services.NewTransactionService(st),
		Dashboard:    dashboard,
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter builds the Gin engine serving /api/health, Swagger UI and the
// /api/v1 routes.
func NewRouter(svc Services, formatter *export.Formatter) *gin.Engine {
	validator.Register()

	memberHandler := handlers.NewMemberHandler(svc.Members, svc.Audit)
	accountHandler := handlers.NewBankAccountHandler(svc.BankAccounts, svc.Audit)
	cardHandler := handlers.NewCreditCardHandler(svc.CreditCards, svc.Audit)
	goalHandler := handlers.NewGoalHandler(svc.Goals, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit, formatter)
	filterHandler := handlers.NewFilterHandler(svc.Dashboard)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	activityHandler := handlers.NewActivityHandler(svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	members := v1.Group("/members")
	members.POST("", memberHandler.CreateMember)
	members.GET("", memberHandler.GetMembers)
	members.GET("/:id", memberHandler.GetMemberByID)
	members.PUT("/:id", memberHandler.UpdateMember)
	members.DELETE("/:id", memberHandler.DeleteMember)

	accounts := v1.Group("/bank-accounts")
	accounts.POST("", accountHandler.CreateBankAccount)
	accounts.GET("", accountHandler.GetBankAccounts)
	accounts.GET("/:id", accountHandler.GetBankAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateBankAccount)
	accounts.DELETE("/:id", accountHandler.DeleteBankAccount)

	cards := v1.Group("/credit-cards")
	cards.POST("", cardHandler.CreateCreditCard)
	cards.GET("", cardHandler.GetCreditCards)
	cards.GET("/:id", cardHandler.GetCreditCardByID)
	cards.PUT("/:id", cardHandler.UpdateCreditCard)
	cards.DELETE("/:id", cardHandler.DeleteCreditCard)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/stats", transactionHandler.GetTransactionStats)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/pay", transactionHandler.MarkAsPaid)

	filters := v1.Group("/filters")
	filters.GET("", filterHandler.GetFilters)
	filters.PUT("", filterHandler.SetFilters)
	filters.DELETE("", filterHandler.ResetFilters)

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/categories", dashboardHandler.GetExpensesByCategory)
	dashboard.GET("/categories/:category/percentage", dashboardHandler.GetCategoryPercentage)
	dashboard.GET("/category-names", dashboardHandler.GetCategories)
	dashboard.GET("/upcoming", dashboardHandler.GetUpcomingExpenses)
	dashboard.GET("/cards", dashboardHandler.GetCardsOverview)
	dashboard.GET("/sources/:id", dashboardHandler.ResolvePaymentSource)

	v1.GET("/activity", activityHandler.GetRecentActivity)

	return router
}
