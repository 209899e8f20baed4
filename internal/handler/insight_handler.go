package handler

import (
	"net/http"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/labstack/echo/v4"
)

// InsightHandler handles insight report requests
type InsightHandler struct {
	insightService *service.InsightService
	policy         ReadPolicy
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService *service.InsightService, policy ReadPolicy) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		policy:         policy,
	}
}

// SpendingTrendResponse compares the expenses of the last two months with data
type SpendingTrendResponse struct {
	CurrentMonth  string  `json:"currentMonth"`
	PreviousMonth string  `json:"previousMonth"`
	Change        string  `json:"change"`
	PercentChange *string `json:"percentChange"`
	IsIncrease    bool    `json:"isIncrease"`
}

// TopCategoryResponse represents the highest spending category
type TopCategoryResponse struct {
	Category     string `json:"category"`
	Amount       string `json:"amount"`
	Count        int    `json:"count"`
	ShareOfTotal string `json:"shareOfTotal"`
}

// RecommendationResponse represents one suggestion shown to the user
type RecommendationResponse struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// InsightsResponse represents the insight report of a month
type InsightsResponse struct {
	Month                   string                   `json:"month"`
	SpendingTrend           *SpendingTrendResponse   `json:"spendingTrend"`
	TopCategory             *TopCategoryResponse     `json:"topCategory"`
	AverageTransactionValue string                   `json:"averageTransactionValue"`
	BudgetAlerts            []BudgetProgressResponse `json:"budgetAlerts"`
	BudgetCount             int                      `json:"budgetCount"`
	Recommendations         []RecommendationResponse `json:"recommendations"`
}

// GetInsights godoc
// @Summary Get spending insights
// @Description Spending trend, top category, average expense, budget alerts and recommendations
// @Tags insights
// @Produce json
// @Param month query string false "Month in YYYY-MM format (default current month)"
// @Success 200 {object} InsightsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights [get]
func (h *InsightHandler) GetInsights(c echo.Context) error {
	month := c.QueryParam("month")
	insights, err := h.insightService.GetInsights(c.Request().Context(), month)
	if err != nil {
		if month == "" {
			month = util.CurrentMonth()
		}
		return h.policy.readError(c, err, "get insights", InsightsResponse{
			Month:                   month,
			AverageTransactionValue: "0.00",
			BudgetAlerts:            []BudgetProgressResponse{},
			Recommendations:         []RecommendationResponse{},
		})
	}

	return c.JSON(http.StatusOK, toInsightsResponse(insights))
}

func toInsightsResponse(in *domain.Insights) InsightsResponse {
	response := InsightsResponse{
		Month:                   in.Month,
		AverageTransactionValue: in.AverageTransactionValue.StringFixed(2),
		BudgetAlerts:            toBudgetProgressResponses(in.BudgetAlerts),
		BudgetCount:             in.BudgetCount,
		Recommendations:         make([]RecommendationResponse, len(in.Recommendations)),
	}

	if t := in.SpendingTrend; t != nil {
		response.SpendingTrend = &SpendingTrendResponse{
			CurrentMonth:  t.CurrentMonth,
			PreviousMonth: t.PreviousMonth,
			Change:        t.Change.StringFixed(2),
			IsIncrease:    t.IsIncrease,
		}
		if t.PercentChange != nil {
			pct := t.PercentChange.StringFixed(2)
			response.SpendingTrend.PercentChange = &pct
		}
	}

	if top := in.TopCategory; top != nil {
		response.TopCategory = &TopCategoryResponse{
			Category:     top.Category,
			Amount:       top.Amount.StringFixed(2),
			Count:        top.Count,
			ShareOfTotal: top.ShareOfTotal.StringFixed(2),
		}
	}

	for i, r := range in.Recommendations {
		response.Recommendations[i] = RecommendationResponse{
			Kind:    string(r.Kind),
			Title:   r.Title,
			Message: r.Message,
		}
	}

	return response
}
