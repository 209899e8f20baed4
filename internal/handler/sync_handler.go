package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SyncHandler serves the change fingerprint polled by clients
type SyncHandler struct {
	syncService *service.SyncService
	policy      ReadPolicy
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *service.SyncService, policy ReadPolicy) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		policy:      policy,
	}
}

// FingerprintResponse summarises the store contents
type FingerprintResponse struct {
	TransactionCount int64   `json:"transactionCount"`
	BudgetCount      int64   `json:"budgetCount"`
	LastModified     *string `json:"lastModified"`
}

// GetFingerprint godoc
// @Summary Get the change fingerprint
// @Description Clients compare successive fingerprints to decide whether to refetch
// @Tags sync
// @Produce json
// @Success 200 {object} FingerprintResponse
// @Failure 500 {object} ProblemDetails
// @Router /sync [get]
func (h *SyncHandler) GetFingerprint(c echo.Context) error {
	fp, err := h.syncService.GetFingerprint(c.Request().Context())
	if err != nil {
		return h.policy.readError(c, err, "get sync fingerprint", FingerprintResponse{})
	}

	response := FingerprintResponse{
		TransactionCount: fp.TransactionCount,
		BudgetCount:      fp.BudgetCount,
	}
	if fp.LastModified != nil {
		s := fp.LastModified.UTC().Format(time.RFC3339Nano)
		response.LastModified = &s
	}

	return c.JSON(http.StatusOK, response)
}
