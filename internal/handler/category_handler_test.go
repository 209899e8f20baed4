package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories_All(t *testing.T) {
	e := echo.New()
	req, rec := newRequest(http.MethodGet, "/api/v1/categories", "")
	c := e.NewContext(req, rec)

	require.NoError(t, NewCategoryHandler().GetCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response CategoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, domain.IncomeCategories, response.Income)
	assert.Equal(t, domain.ExpenseCategories, response.Expense)
}

func TestGetCategories_ByType(t *testing.T) {
	e := echo.New()
	req, rec := newRequest(http.MethodGet, "/api/v1/categories?type=expense", "")
	c := e.NewContext(req, rec)

	require.NoError(t, NewCategoryHandler().GetCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, domain.ExpenseCategories, response)
}

func TestGetCategories_InvalidType(t *testing.T) {
	e := echo.New()
	req, rec := newRequest(http.MethodGet, "/api/v1/categories?type=transfer", "")
	c := e.NewContext(req, rec)

	require.NoError(t, NewCategoryHandler().GetCategories(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
