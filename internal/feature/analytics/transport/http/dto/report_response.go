// Package dto defines the response payloads for the analytics endpoint.
package dto

import "time"

// MonthlyBreakdownResponse is one calendar month of aggregates.
type MonthlyBreakdownResponse struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// CategoryTotalResponse is one expense category with its accumulated spend.
type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AnomalyResponse is one flagged expense.
type AnomalyResponse struct {
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// ReportResponse is the full analytics report returned by GET /analytics.
type ReportResponse struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`

	SavingsRate  float64 `json:"savings_rate"`
	ExpenseRatio float64 `json:"expense_ratio"`

	Monthly map[string]MonthlyBreakdownResponse `json:"monthly"`

	AvgMonthlyIncome   float64 `json:"avg_monthly_income"`
	AvgMonthlyExpenses float64 `json:"avg_monthly_expenses"`
	AvgMonthlySavings  float64 `json:"avg_monthly_savings"`

	IncomeForecast  float64 `json:"income_forecast"`
	ExpenseForecast float64 `json:"expense_forecast"`

	TopCategories   []CategoryTotalResponse `json:"top_categories"`
	HighestCategory *CategoryTotalResponse  `json:"highest_category,omitempty"`

	FinancialHealth string            `json:"financial_health,omitempty"`
	Recommendations []string          `json:"recommendations"`
	Anomalies       []AnomalyResponse `json:"anomalies"`
}
