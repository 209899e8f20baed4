package handler

import (
	"net/http"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles dashboard aggregate requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	policy           ReadPolicy
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, policy ReadPolicy) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		policy:           policy,
	}
}

// MonthlyDataResponse represents the income and expense totals of one month
type MonthlyDataResponse struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// CategorySummaryResponse represents the spend of one expense category
type CategorySummaryResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Count    int    `json:"count"`
}

// AnalyticsResponse represents the dashboard payload
type AnalyticsResponse struct {
	MonthlyData  []MonthlyDataResponse     `json:"monthlyData"`
	CategoryData []CategorySummaryResponse `json:"categoryData"`
}

// GetAnalytics godoc
// @Summary Get dashboard analytics
// @Description Monthly income/expense over every month with data, plus the expense breakdown by category
// @Tags analytics
// @Produce json
// @Param month query string false "Scope the category breakdown to a month (YYYY-MM)"
// @Success 200 {object} AnalyticsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	analytics, err := h.analyticsService.GetAnalytics(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return h.policy.readError(c, err, "get analytics", AnalyticsResponse{
			MonthlyData:  []MonthlyDataResponse{},
			CategoryData: []CategorySummaryResponse{},
		})
	}

	return c.JSON(http.StatusOK, AnalyticsResponse{
		MonthlyData:  toMonthlyDataResponses(analytics.MonthlyData),
		CategoryData: toCategorySummaryResponses(analytics.CategoryData),
	})
}

func toMonthlyDataResponses(data []domain.MonthlyData) []MonthlyDataResponse {
	out := make([]MonthlyDataResponse, len(data))
	for i, m := range data {
		out[i] = MonthlyDataResponse{
			Month:    m.Month,
			Income:   m.Income.StringFixed(2),
			Expenses: m.Expenses.StringFixed(2),
			Net:      m.Net.StringFixed(2),
		}
	}
	return out
}

func toCategorySummaryResponse(s domain.CategorySummary) CategorySummaryResponse {
	return CategorySummaryResponse{
		Category: s.Category,
		Amount:   s.Amount.StringFixed(2),
		Count:    s.Count,
	}
}

func toCategorySummaryResponses(data []domain.CategorySummary) []CategorySummaryResponse {
	out := make([]CategorySummaryResponse, len(data))
	for i, s := range data {
		out[i] = toCategorySummaryResponse(s)
	}
	return out
}
