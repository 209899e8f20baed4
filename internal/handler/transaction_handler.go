package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	policy             ReadPolicy
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, policy ReadPolicy) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		policy:             policy,
	}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

// UpdateTransactionRequest represents a partial update; omitted fields are kept
type UpdateTransactionRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Date        *string `json:"date,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// PaginationResponse describes the page that was returned
type PaginationResponse struct {
	Page    int32 `json:"page"`
	Limit   int32 `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// PaginatedTransactionsResponse represents one page of transactions
type PaginatedTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create a new income or expense transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), service.CreateTransactionInput{
		Amount:      amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		return writeError(c, err, "create transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description Page through transactions, newest date first
// @Tags transactions
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} PaginatedTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	page, err := queryInt32(c, "page")
	if err != nil {
		return NewValidationError(c, "Invalid page", []ValidationError{
			{Field: "page", Message: "Must be a whole number"},
		})
	}
	limit, err := queryInt32(c, "limit")
	if err != nil {
		return NewValidationError(c, "Invalid limit", []ValidationError{
			{Field: "limit", Message: "Must be a whole number"},
		})
	}

	result, err := h.transactionService.ListTransactions(c.Request().Context(), page, limit)
	if err != nil {
		return h.policy.readError(c, err, "list transactions", emptyTransactionPage(page, limit))
	}

	response := PaginatedTransactionsResponse{
		Transactions: make([]TransactionResponse, len(result.Data)),
		Pagination: PaginationResponse{
			Page:    result.Page,
			Limit:   result.Limit,
			HasMore: result.HasMore,
		},
	}
	for i, t := range result.Data {
		response.Transactions[i] = toTransactionResponse(t)
	}

	return c.JSON(http.StatusOK, response)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return err
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Apply a partial update; the merged transaction must still be valid
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return err
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data := &domain.UpdateTransactionData{
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		data.Amount = &amount
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		data.Type = &t
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), id, data)
	if err != nil {
		return writeError(c, err, "update transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return err
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), id); err != nil {
		return writeError(c, err, "delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

// parseTransactionID writes the 400 response itself, so callers return the error as is
func parseTransactionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, NewValidationError(c, "Invalid transaction ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}
	return id, nil
}

// queryInt32 returns 0 for an absent parameter so the service applies its default
func queryInt32(c echo.Context, name string) (int32, error) {
	value := c.QueryParam(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func emptyTransactionPage(page, limit int32) PaginatedTransactionsResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	return PaginatedTransactionsResponse{
		Transactions: []TransactionResponse{},
		Pagination:   PaginationResponse{Page: page, Limit: limit},
	}
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}
