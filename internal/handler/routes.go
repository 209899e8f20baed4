package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler mounted under /api/v1
type Handlers struct {
	Transaction *TransactionHandler
	Budget      *BudgetHandler
	Analytics   *AnalyticsHandler
	Insight     *InsightHandler
	Category    *CategoryHandler
	Sync        *SyncHandler
}

// RegisterRoutes sets up all API routes; m applies to every route in the group
func RegisterRoutes(e *echo.Echo, h Handlers, m ...echo.MiddlewareFunc) {
	// API version 1
	api := e.Group("/api/v1", m...)

	transactions := api.Group("/transactions")
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.GetTransactions)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PUT("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.GET("", h.Budget.GetBudgets)
	budgets.POST("", h.Budget.SetBudget)
	budgets.GET("/progress", h.Budget.GetBudgetProgress)

	api.GET("/analytics", h.Analytics.GetAnalytics)
	api.GET("/insights", h.Insight.GetInsights)
	api.GET("/categories", h.Category.GetCategories)
	api.GET("/sync", h.Sync.GetFingerprint)
}
