package handler

import (
	"net/http"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	transactionUseCase "github.com/cloudai/owner-console/internal/domain/usecase/transaction"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles subscription payment requests
type TransactionHandler struct {
	transactions *transactionUseCase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions *transactionUseCase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

// List handles GET /api/transactions/list
func (h *TransactionHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	rows, err := h.transactions.List(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		h.logger.Error("Failed to list transactions", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	transactions := make([]dto.TransactionResponse, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, dto.TransactionResponse{
			ID:         row.Transaction.ID,
			UID:        row.Transaction.UID,
			UserName:   row.UserName,
			PlanID:     row.Transaction.PlanID,
			Amount:     row.Transaction.Amount,
			Currency:   row.Transaction.Currency,
			Provider:   row.Transaction.Provider,
			Status:     string(row.Transaction.Status),
			CreatedAt:  row.Transaction.CreatedAt,
			PaidAt:     row.Transaction.PaidAt,
			ApprovedBy: row.Transaction.ApprovedBy,
		})
	}
	c.JSON(http.StatusOK, dto.TransactionListResponse{Transactions: transactions})
}

// Confirm handles POST /api/transactions/confirm
func (h *TransactionHandler) Confirm(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	result, err := h.transactions.Confirm(c.Request.Context(), actor.UID, req.ID)
	if err != nil {
		h.logger.Error("Transaction confirmation failed", map[string]any{
			"id":    req.ID,
			"actor": actor.UID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmTransactionResponse{
		OK:              true,
		Already:         result.Already,
		UpdatedServices: result.UpdatedServices,
	})
}
