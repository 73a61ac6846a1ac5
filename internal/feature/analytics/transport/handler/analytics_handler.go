// Package handler provides the HTTP handler for the analytics feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/analytics/transport/http/dto"
	"finance_backend/internal/feature/analytics/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// AnalyticsUsecase defines the analytics operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AnalyticsUsecase interface {
	BuildReport(ctx context.Context, userID uint) (*usecase.Report, error)
}

// AnalyticsHandler handles the HTTP requests for the analytics report.
type AnalyticsHandler struct {
	uc AnalyticsUsecase
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(uc AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Get handles GET /analytics.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	report, err := h.uc.BuildReport(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to build analytics report", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load analytics"})
		return
	}

	c.JSON(http.StatusOK, toResponse(report))
}

func toResponse(r *usecase.Report) dto.ReportResponse {
	out := dto.ReportResponse{
		TotalIncome:        r.TotalIncome,
		TotalExpenses:      r.TotalExpenses,
		Balance:            r.Balance,
		SavingsRate:        r.SavingsRate,
		ExpenseRatio:       r.ExpenseRatio,
		Monthly:            make(map[string]dto.MonthlyBreakdownResponse, len(r.Monthly)),
		AvgMonthlyIncome:   r.AvgMonthlyIncome,
		AvgMonthlyExpenses: r.AvgMonthlyExpenses,
		AvgMonthlySavings:  r.AvgMonthlySavings,
		IncomeForecast:     r.IncomeForecast,
		ExpenseForecast:    r.ExpenseForecast,
		FinancialHealth:    r.FinancialHealth,
		Recommendations:    r.Recommendations,
		TopCategories:      make([]dto.CategoryTotalResponse, 0, len(r.TopCategories)),
		Anomalies:          make([]dto.AnomalyResponse, 0, len(r.Anomalies)),
	}
	for k, v := range r.Monthly {
		out.Monthly[k] = dto.MonthlyBreakdownResponse{Income: v.Income, Expenses: v.Expenses, Net: v.Net}
	}
	for _, ct := range r.TopCategories {
		out.TopCategories = append(out.TopCategories, dto.CategoryTotalResponse{Category: ct.Category, Amount: ct.Amount})
	}
	if r.HighestCategory != nil {
		out.HighestCategory = &dto.CategoryTotalResponse{Category: r.HighestCategory.Category, Amount: r.HighestCategory.Amount}
	}
	for _, a := range r.Anomalies {
		out.Anomalies = append(out.Anomalies, dto.AnomalyResponse{Category: a.Category, Amount: a.Amount, Date: a.Date})
	}
	return out
}
