package handler

import (
	"net/http"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the fixed category catalogue
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoriesResponse lists the categories of each transaction type
type CategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// GetCategories godoc
// @Summary List categories
// @Description Without a type, both sets are returned; with one, only that set as an array
// @Tags categories
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {object} CategoriesResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	typeParam := c.QueryParam("type")
	if typeParam == "" {
		return c.JSON(http.StatusOK, CategoriesResponse{
			Income:  domain.IncomeCategories,
			Expense: domain.ExpenseCategories,
		})
	}

	t := domain.TransactionType(typeParam)
	if !t.Valid() {
		return NewValidationError(c, "Invalid type", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		})
	}

	return c.JSON(http.StatusOK, domain.CategoriesForType(t))
}
