// Package usecase implements the spending-analytics computations for the
// dashboard: monthly aggregates, savings metrics, forecasts, category
// rankings, a financial-health rating, and expense anomaly flagging.
package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"finance_backend/internal/feature/transactions/domain/entity"
)

// TransactionRepository is the read side the analytics need.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TransactionRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.Transaction, error)
}

// minTransactionsForInsights is how many transactions a user needs before
// the health rating and anomaly detection produce output.
const minTransactionsForInsights = 5

// MonthlyBreakdown aggregates one calendar month.
type MonthlyBreakdown struct {
	Income   float64
	Expenses float64
	Net      float64
}

// CategoryTotal is the spend accumulated in one expense category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// Anomaly flags one unusually large expense.
type Anomaly struct {
	Category string
	Amount   float64
	Date     time.Time
}

// Report is the full analytics result for one user.
type Report struct {
	TotalIncome   float64
	TotalExpenses float64
	Balance       float64

	SavingsRate  float64 // percent of income kept, 0 when no income
	ExpenseRatio float64 // percent of income spent, 0 when no income

	Monthly map[string]MonthlyBreakdown // keyed "2006-01"

	AvgMonthlyIncome   float64
	AvgMonthlyExpenses float64
	AvgMonthlySavings  float64

	// Simple 3-month moving-average forecasts.
	IncomeForecast  float64
	ExpenseForecast float64

	TopCategories   []CategoryTotal // up to three, largest first
	HighestCategory *CategoryTotal  // nil when the user has no expenses

	FinancialHealth string // "Excellent", "Good", "Needs Improvement", or "" with little data
	Recommendations []string
	Anomalies       []Anomaly
}

// analyticsUsecase computes reports from a user's transaction history.
type analyticsUsecase struct {
	repo TransactionRepository
}

// NewAnalyticsUsecase creates a new analyticsUsecase.
func NewAnalyticsUsecase(repo TransactionRepository) *analyticsUsecase {
	return &analyticsUsecase{repo: repo}
}

// BuildReport loads the user's transactions and derives the full report.
// The computation is deterministic for a given transaction list.
func (u *analyticsUsecase) BuildReport(ctx context.Context, userID uint) (*Report, error) {
	txs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildReport(txs), nil
}

func buildReport(txs []entity.Transaction) *Report {
	r := &Report{
		Monthly:         map[string]MonthlyBreakdown{},
		Recommendations: []string{},
		Anomalies:       []Anomaly{},
	}

	categoryTotals := map[string]float64{}
	for _, tx := range txs {
		key := tx.Date.Format("2006-01")
		m := r.Monthly[key]
		switch tx.Type {
		case entity.Income:
			r.TotalIncome += tx.Amount
			m.Income += tx.Amount
		case entity.Expense:
			r.TotalExpenses += tx.Amount
			m.Expenses += tx.Amount
			categoryTotals[tx.Category] += tx.Amount
		}
		m.Net = m.Income - m.Expenses
		r.Monthly[key] = m
	}
	r.Balance = r.TotalIncome - r.TotalExpenses

	if r.TotalIncome > 0 {
		r.SavingsRate = (r.TotalIncome - r.TotalExpenses) / r.TotalIncome * 100
		r.ExpenseRatio = r.TotalExpenses / r.TotalIncome * 100
	}

	months := sortedMonths(r.Monthly)
	if n := float64(len(months)); n > 0 {
		for _, m := range months {
			b := r.Monthly[m]
			r.AvgMonthlyIncome += b.Income
			r.AvgMonthlyExpenses += b.Expenses
			r.AvgMonthlySavings += b.Net
		}
		r.AvgMonthlyIncome /= n
		r.AvgMonthlyExpenses /= n
		r.AvgMonthlySavings /= n
	}

	// Forecast: mean of the last three months (or fewer when history is short).
	recent := months
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	if n := float64(len(recent)); n > 0 {
		for _, m := range recent {
			r.IncomeForecast += r.Monthly[m].Income
			r.ExpenseForecast += r.Monthly[m].Expenses
		}
		r.IncomeForecast /= n
		r.ExpenseForecast /= n
	}

	ranked := rankCategories(categoryTotals)
	if len(ranked) > 0 {
		top := ranked[0]
		r.HighestCategory = &top
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("Consider setting a budget for your top spending category: %s.", top.Category))
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	r.TopCategories = ranked

	if len(txs) >= minTransactionsForInsights {
		r.FinancialHealth = healthRating(r.Monthly, recent)
		switch r.FinancialHealth {
		case "Excellent":
			r.Recommendations = append(r.Recommendations, "Keep up the great work! Your financial health is excellent.")
		case "Good":
			r.Recommendations = append(r.Recommendations, "Your financial health is good. Consider increasing savings.")
		case "Needs Improvement":
			r.Recommendations = append(r.Recommendations, "Focus on reducing expenses and increasing savings rate.")
		}
		r.Anomalies = findAnomalies(txs)
	}

	return r
}

func sortedMonths(monthly map[string]MonthlyBreakdown) []string {
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

func rankCategories(totals map[string]float64) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for c, a := range totals {
		out = append(out, CategoryTotal{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category // stable order for equal amounts
	})
	return out
}

// healthRating grades the recent months by average savings rate and expense
// stability (one minus the coefficient of variation of monthly expenses).
func healthRating(monthly map[string]MonthlyBreakdown, recentMonths []string) string {
	if len(recentMonths) == 0 {
		return ""
	}

	var savingsRates []float64
	var expenses []float64
	for _, m := range recentMonths {
		b := monthly[m]
		if b.Income > 0 {
			savingsRates = append(savingsRates, b.Net/b.Income*100)
		} else {
			savingsRates = append(savingsRates, 0)
		}
		expenses = append(expenses, b.Expenses)
	}

	avgSavingsRate := mean(savingsRates)
	stability := 0.0
	if m := mean(expenses); m > 0 {
		stability = 1 - stddev(expenses)/m
	}

	switch {
	case avgSavingsRate > 20 && stability > 0.7:
		return "Excellent"
	case avgSavingsRate > 10 && stability > 0.5:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// findAnomalies splits expense amounts into two clusters and flags the ones
// in the higher-centered cluster as unusually large. The split is a
// deterministic one-dimensional 2-means: centroids start at the minimum and
// maximum amounts, so identical inputs always produce identical output.
func findAnomalies(txs []entity.Transaction) []Anomaly {
	var expenses []entity.Transaction
	for _, tx := range txs {
		if tx.Type == entity.Expense {
			expenses = append(expenses, tx)
		}
	}
	if len(expenses) < 2 {
		return []Anomaly{}
	}

	lo, hi := expenses[0].Amount, expenses[0].Amount
	for _, tx := range expenses[1:] {
		lo = math.Min(lo, tx.Amount)
		hi = math.Max(hi, tx.Amount)
	}
	if lo == hi {
		return []Anomaly{} // all amounts equal, nothing stands out
	}

	cLow, cHigh := lo, hi
	assign := make([]bool, len(expenses)) // true = high cluster
	for range [100]struct{}{} {
		var sumLow, sumHigh float64
		var nLow, nHigh int
		changed := false
		for i, tx := range expenses {
			high := math.Abs(tx.Amount-cHigh) < math.Abs(tx.Amount-cLow)
			if assign[i] != high {
				assign[i] = high
				changed = true
			}
			if high {
				sumHigh += tx.Amount
				nHigh++
			} else {
				sumLow += tx.Amount
				nLow++
			}
		}
		if nLow > 0 {
			cLow = sumLow / float64(nLow)
		}
		if nHigh > 0 {
			cHigh = sumHigh / float64(nHigh)
		}
		if !changed {
			break
		}
	}

	anomalies := []Anomaly{}
	for i, tx := range expenses {
		if assign[i] {
			anomalies = append(anomalies, Anomaly{Category: tx.Category, Amount: tx.Amount, Date: tx.Date})
		}
	}
	// A "cluster" holding every expense means there is no outlier group.
	if len(anomalies) == len(expenses) {
		return []Anomaly{}
	}
	return anomalies
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
