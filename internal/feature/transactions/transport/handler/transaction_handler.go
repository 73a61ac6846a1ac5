// Package handler provides the HTTP handlers for the transactions feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/transactions/domain/entity"
	"finance_backend/internal/feature/transactions/transport/http/dto"
	"finance_backend/internal/feature/transactions/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// TransactionUsecase defines the transaction operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TransactionUsecase interface {
	Add(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error)
	List(ctx context.Context, userID uint) ([]entity.Transaction, error)
	Summarize(ctx context.Context, userID uint) (usecase.Summary, error)
}

// TransactionHandler handles the HTTP requests for transaction operations.
type TransactionHandler struct {
	uc TransactionUsecase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(uc TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.AddTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("transaction validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	tx, err := h.uc.Add(c.Request.Context(), userID, req.Amount, req.Category, entity.TransactionType(req.Type), req.Description, date)
	if err != nil {
		slog.Warn("failed to add transaction", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toResponse(*tx))
}

// List handles GET /transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	txs, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list transactions", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load transactions"})
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	c.JSON(http.StatusOK, out)
}

// Dashboard handles GET /dashboard with the aggregate figures.
func (h *TransactionHandler) Dashboard(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	s, err := h.uc.Summarize(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to build dashboard summary", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalIncome:      s.TotalIncome,
		TotalExpenses:    s.TotalExpenses,
		Balance:          s.Balance,
		MonthlyIncome:    s.MonthlyIncome,
		MonthlyExpenses:  s.MonthlyExpenses,
		TransactionCount: s.TransactionCount,
	})
}

func toResponse(tx entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        string(tx.Type),
		Description: tx.Description,
		Date:        tx.Date,
	}
}
