package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/dafibh/fintrack/fintrack-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var (
	degrade   = ReadPolicy{DegradeOnStoreUnavailable: true}
	noDegrade = ReadPolicy{}
)

func errUnavailable(op string) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
}

func newRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req, httptest.NewRecorder()
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem: %v", err)
	}
	return problem
}

func newTransactionHandler(policy ReadPolicy) (*TransactionHandler, *testutil.MockTransactionRepository) {
	repo := testutil.NewMockTransactionRepository()
	return NewTransactionHandler(service.NewTransactionService(repo), policy), repo
}

func seedTransaction(repo *testutil.MockTransactionRepository, amount, description, category, date string, txType domain.TransactionType) *domain.Transaction {
	return repo.AddTransaction(&domain.Transaction{
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Category:    category,
		Date:        date,
		Type:        txType,
	})
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)

	req, rec := newRequest(http.MethodPost, "/api/v1/transactions",
		`{"amount": "150.5", "description": "  Weekly groceries ", "category": "Groceries", "date": "2025-03-14", "type": "expense"}`)
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "150.50" {
		t.Errorf("Expected amount '150.50', got %s", response.Amount)
	}
	if response.Description != "Weekly groceries" {
		t.Errorf("Expected trimmed description, got %q", response.Description)
	}
	if response.Date != "2025-03-14" {
		t.Errorf("Expected date '2025-03-14', got %s", response.Date)
	}
	if _, err := uuid.Parse(response.ID); err != nil {
		t.Errorf("Expected a UUID id, got %s", response.ID)
	}
	if len(repo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(repo.Transactions))
	}
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed amount", `{"amount": "abc", "description": "x", "category": "Groceries", "date": "2025-03-14", "type": "expense"}`, "amount"},
		{"zero amount", `{"amount": "0", "description": "x", "category": "Groceries", "date": "2025-03-14", "type": "expense"}`, "amount"},
		{"negative amount", `{"amount": "-5", "description": "x", "category": "Groceries", "date": "2025-03-14", "type": "expense"}`, "amount"},
		{"blank description", `{"amount": "5", "description": "   ", "category": "Groceries", "date": "2025-03-14", "type": "expense"}`, "description"},
		{"unknown type", `{"amount": "5", "description": "x", "category": "Groceries", "date": "2025-03-14", "type": "transfer"}`, "type"},
		{"category of other type", `{"amount": "5", "description": "x", "category": "Salary", "date": "2025-03-14", "type": "expense"}`, "category"},
		{"impossible date", `{"amount": "5", "description": "x", "category": "Groceries", "date": "2025-02-30", "type": "expense"}`, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, repo := newTransactionHandler(degrade)

			req, rec := newRequest(http.MethodPost, "/api/v1/transactions", tt.body)
			c := e.NewContext(req, rec)

			if err := handler.CreateTransaction(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}
			problem := decodeProblem(t, rec)
			if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected error on field %s, got %+v", tt.field, problem.Errors)
			}
			if len(repo.Transactions) != 0 {
				t.Error("Expected nothing stored")
			}
		})
	}
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler(degrade)

	req, rec := newRequest(http.MethodPost, "/api/v1/transactions", `{"amount": `)
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_StoreUnavailable(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	repo.Err = errUnavailable("create transaction")

	req, rec := newRequest(http.MethodPost, "/api/v1/transactions",
		`{"amount": "10", "description": "Bus", "category": "Transportation", "date": "2025-03-14", "type": "expense"}`)
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
	if rec.Header().Get(DegradedHeader) != "" {
		t.Error("Writes must not be marked degraded")
	}
}

func TestGetTransactions_Pagination(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	for i := 1; i <= 3; i++ {
		seedTransaction(repo, "10", fmt.Sprintf("Lunch %d", i), "Food & Dining", fmt.Sprintf("2025-03-0%d", i), domain.TransactionTypeExpense)
	}

	req, rec := newRequest(http.MethodGet, "/api/v1/transactions?page=1&limit=2", "")
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response PaginatedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(response.Transactions))
	}
	if response.Transactions[0].Date != "2025-03-03" {
		t.Errorf("Expected newest first, got %s", response.Transactions[0].Date)
	}
	if !response.Pagination.HasMore {
		t.Error("Expected hasMore for a full page")
	}
	if response.Pagination.Page != 1 || response.Pagination.Limit != 2 {
		t.Errorf("Unexpected pagination %+v", response.Pagination)
	}
}

func TestGetTransactions_Defaults(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler(degrade)

	req, rec := newRequest(http.MethodGet, "/api/v1/transactions", "")
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response PaginatedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Pagination.Page != 1 || response.Pagination.Limit != domain.DefaultPageSize {
		t.Errorf("Expected default pagination, got %+v", response.Pagination)
	}
	if response.Transactions == nil || len(response.Transactions) != 0 {
		t.Errorf("Expected empty array, got %v", response.Transactions)
	}
	if !strings.Contains(rec.Body.String(), `"transactions":[]`) {
		t.Errorf("Expected transactions to serialize as [], got %s", rec.Body.String())
	}
}

func TestGetTransactions_InvalidQuery(t *testing.T) {
	for _, query := range []string{"page=abc", "limit=1.5"} {
		t.Run(query, func(t *testing.T) {
			e := echo.New()
			handler, _ := newTransactionHandler(degrade)

			req, rec := newRequest(http.MethodGet, "/api/v1/transactions?"+query, "")
			c := e.NewContext(req, rec)

			if err := handler.GetTransactions(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestGetTransactions_DegradedRead(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	repo.Err = errUnavailable("list transactions")

	req, rec := newRequest(http.MethodGet, "/api/v1/transactions?limit=500", "")
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(DegradedHeader); got != DegradedStoreUnavailable {
		t.Errorf("Expected degraded header, got %q", got)
	}

	var response PaginatedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Transactions) != 0 || response.Pagination.HasMore {
		t.Errorf("Expected an empty page, got %+v", response)
	}
	if response.Pagination.Limit != domain.MaxPageSize {
		t.Errorf("Expected limit clamped to %d, got %d", domain.MaxPageSize, response.Pagination.Limit)
	}
}

func TestGetTransactions_DegradationDisabled(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(noDegrade)
	repo.Err = errUnavailable("list transactions")

	req, rec := newRequest(http.MethodGet, "/api/v1/transactions", "")
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}

func TestGetTransaction(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	tx := seedTransaction(repo, "2500", "March salary", "Salary", "2025-03-01", domain.TransactionTypeIncome)

	req, rec := newRequest(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(tx.ID.String())

	if err := handler.GetTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "2500.00" || response.Type != "income" {
		t.Errorf("Unexpected response %+v", response)
	}
}

func TestGetTransaction_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"malformed id", "not-a-uuid", http.StatusBadRequest},
		{"missing id", uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, _ := newTransactionHandler(degrade)

			req, rec := newRequest(http.MethodGet, "/", "")
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			if err := handler.GetTransaction(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestUpdateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	tx := seedTransaction(repo, "40", "Cinema", "Entertainment", "2025-03-10", domain.TransactionTypeExpense)

	req, rec := newRequest(http.MethodPut, "/", `{"amount": "55.25", "description": "Cinema and snacks"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(tx.ID.String())

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "55.25" || response.Description != "Cinema and snacks" {
		t.Errorf("Unexpected response %+v", response)
	}
	if response.Category != "Entertainment" {
		t.Errorf("Expected untouched category, got %s", response.Category)
	}
}

func TestUpdateTransaction_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      func(*testutil.MockTransactionRepository) string
		body    string
		status  int
		field   string
		updated bool
	}{
		{
			name:   "type change leaves category invalid",
			id:     func(r *testutil.MockTransactionRepository) string { return seedExpense(r) },
			body:   `{"type": "income"}`,
			status: http.StatusBadRequest,
			field:  "category",
		},
		{
			name:   "empty update",
			id:     func(r *testutil.MockTransactionRepository) string { return seedExpense(r) },
			body:   `{}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed amount",
			id:     func(r *testutil.MockTransactionRepository) string { return seedExpense(r) },
			body:   `{"amount": "1,5"}`,
			status: http.StatusBadRequest,
			field:  "amount",
		},
		{
			name:   "missing transaction",
			id:     func(*testutil.MockTransactionRepository) string { return uuid.NewString() },
			body:   `{"amount": "5"}`,
			status: http.StatusNotFound,
		},
		{
			name:   "malformed id",
			id:     func(*testutil.MockTransactionRepository) string { return "42" },
			body:   `{"amount": "5"}`,
			status: http.StatusBadRequest,
			field:  "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, repo := newTransactionHandler(degrade)
			id := tt.id(repo)

			req, rec := newRequest(http.MethodPut, "/", tt.body)
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(id)

			if err := handler.UpdateTransaction(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, rec.Code)
			}
			if tt.field != "" {
				problem := decodeProblem(t, rec)
				if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
					t.Errorf("Expected error on field %s, got %+v", tt.field, problem.Errors)
				}
			}
			if repo.UpdateCalls != 0 {
				t.Errorf("Expected no store update, got %d", repo.UpdateCalls)
			}
		})
	}
}

func seedExpense(repo *testutil.MockTransactionRepository) string {
	return seedTransaction(repo, "12", "Pharmacy", "Healthcare", "2025-03-05", domain.TransactionTypeExpense).ID.String()
}

func TestDeleteTransaction(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	id := seedExpense(repo)

	req, rec := newRequest(http.MethodDelete, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}
	if len(repo.Transactions) != 0 {
		t.Error("Expected transaction removed")
	}

	// Deleting again is a 404
	req, rec = newRequest(http.MethodDelete, "/", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTransaction_StoreUnavailable(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler(degrade)
	id := seedExpense(repo)
	repo.Err = errUnavailable("delete transaction")

	req, rec := newRequest(http.MethodDelete, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
