package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/dafibh/fintrack/fintrack-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	policy        ReadPolicy
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, policy ReadPolicy) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		policy:        policy,
	}
}

// SetBudgetRequest represents the upsert budget request body
type SetBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Month     string `json:"month"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BudgetProgressResponse represents one budget evaluated against the month's spend
type BudgetProgressResponse struct {
	Budget            BudgetResponse `json:"budget"`
	Spent             string         `json:"spent"`
	Remaining         string         `json:"remaining"`
	Percentage        string         `json:"percentage"`
	DisplayPercentage string         `json:"displayPercentage"`
	IsOverBudget      bool           `json:"isOverBudget"`
	IsNearLimit       bool           `json:"isNearLimit"`
}

// MonthlyBudgetProgressResponse represents the evaluation of every budget in a month
type MonthlyBudgetProgressResponse struct {
	Month          string                   `json:"month"`
	TotalBudgeted  string                   `json:"totalBudgeted"`
	TotalSpent     string                   `json:"totalSpent"`
	TotalRemaining string                   `json:"totalRemaining"`
	Budgets        []BudgetProgressResponse `json:"budgets"`
}

// GetBudgets godoc
// @Summary List budgets of a month
// @Tags budgets
// @Produce json
// @Param month query string false "Month in YYYY-MM format (default current month)"
// @Success 200 {array} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetBudgets(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return h.policy.readError(c, err, "get budgets", []BudgetResponse{})
	}

	response := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		response[i] = toBudgetResponse(b)
	}

	return c.JSON(http.StatusOK, response)
}

// SetBudget godoc
// @Summary Set a budget
// @Description Create or replace the budget of an expense category for a month
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body SetBudgetRequest true "Budget to set"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.SetBudget(c.Request().Context(), req.Category, amount, req.Month)
	if err != nil {
		return writeError(c, err, "set budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// GetBudgetProgress godoc
// @Summary Evaluate budgets of a month
// @Description Spent, remaining and percentage per budget, with month totals
// @Tags budgets
// @Produce json
// @Param month query string false "Month in YYYY-MM format (default current month)"
// @Success 200 {object} MonthlyBudgetProgressResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /budgets/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c echo.Context) error {
	month := c.QueryParam("month")
	progress, err := h.budgetService.GetBudgetProgress(c.Request().Context(), month)
	if err != nil {
		if month == "" {
			month = util.CurrentMonth()
		}
		return h.policy.readError(c, err, "get budget progress", MonthlyBudgetProgressResponse{
			Month:          month,
			TotalBudgeted:  "0.00",
			TotalSpent:     "0.00",
			TotalRemaining: "0.00",
			Budgets:        []BudgetProgressResponse{},
		})
	}

	return c.JSON(http.StatusOK, toMonthlyBudgetProgressResponse(progress))
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID.String(),
		Category:  b.Category,
		Amount:    b.Amount.StringFixed(2),
		Month:     b.Month,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBudgetProgressResponse(p *domain.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		Budget:            toBudgetResponse(p.Budget),
		Spent:             p.Spent.StringFixed(2),
		Remaining:         p.Remaining.StringFixed(2),
		Percentage:        p.Percentage.StringFixed(2),
		DisplayPercentage: p.DisplayPercentage.StringFixed(2),
		IsOverBudget:      p.IsOverBudget,
		IsNearLimit:       p.IsNearLimit,
	}
}

func toBudgetProgressResponses(progress []*domain.BudgetProgress) []BudgetProgressResponse {
	out := make([]BudgetProgressResponse, len(progress))
	for i, p := range progress {
		out[i] = toBudgetProgressResponse(p)
	}
	return out
}

func toMonthlyBudgetProgressResponse(m *domain.MonthlyBudgetProgress) MonthlyBudgetProgressResponse {
	return MonthlyBudgetProgressResponse{
		Month:          m.Month,
		TotalBudgeted:  m.TotalBudgeted.StringFixed(2),
		TotalSpent:     m.TotalSpent.StringFixed(2),
		TotalRemaining: m.TotalRemaining.StringFixed(2),
		Budgets:        toBudgetProgressResponses(m.Budgets),
	}
}
