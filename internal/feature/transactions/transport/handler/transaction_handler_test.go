package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"finance_backend/internal/feature/transactions/domain/entity"
	"finance_backend/internal/feature/transactions/transport/http/dto"
	"finance_backend/internal/feature/transactions/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// mockTransactionUsecase is a mock implementation of the TransactionUsecase interface.
type mockTransactionUsecase struct {
	AddFunc       func(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error)
	ListFunc      func(ctx context.Context, userID uint) ([]entity.Transaction, error)
	SummarizeFunc func(ctx context.Context, userID uint) (usecase.Summary, error)
}

// Add is the mock implementation of the Add method.
func (m *mockTransactionUsecase) Add(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, amount, category, typ, description, date)
	}
	return &entity.Transaction{}, nil
}

// List is the mock implementation of the List method.
func (m *mockTransactionUsecase) List(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

// Summarize is the mock implementation of the Summarize method.
func (m *mockTransactionUsecase) Summarize(ctx context.Context, userID uint) (usecase.Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, userID)
	}
	return usecase.Summary{}, nil
}

// newTxRouter injects a fixed user ID the way the JWT middleware would.
func newTxRouter(uc TransactionUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(jwtmw.ContextUserID, userID) })
	h := NewTransactionHandler(uc)
	r.POST("/transactions", h.Create)
	r.GET("/transactions", h.List)
	r.GET("/dashboard", h.Dashboard)
	return r
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockTransactionUsecase{
			AddFunc: func(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error) {
				assert.Equal(t, uint(7), userID)
				assert.Equal(t, 1200.0, amount)
				assert.Equal(t, entity.Expense, typ)
				return &entity.Transaction{ID: 1, UserID: userID, Amount: amount, Category: category, Type: typ, Date: date}, nil
			},
		}
		r := newTxRouter(uc, 7)

		body, _ := json.Marshal(gin.H{"amount": 1200, "category": "Food", "type": "expense", "date": "2025-06-01T00:00:00Z"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res dto.TransactionResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, uint(1), res.ID)
		assert.Equal(t, "Food", res.Category)
	})

	t.Run("binding rejects bad payloads", func(t *testing.T) {
		tests := []struct {
			name string
			body gin.H
		}{
			{"missing amount", gin.H{"category": "Food", "type": "expense"}},
			{"negative amount", gin.H{"amount": -5, "category": "Food", "type": "expense"}},
			{"unknown type", gin.H{"amount": 100, "category": "Food", "type": "transfer"}},
			{"missing category", gin.H{"amount": 100, "type": "expense"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				called := false
				uc := &mockTransactionUsecase{
					AddFunc: func(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error) {
						called = true
						return nil, nil
					},
				}
				r := newTxRouter(uc, 7)

				body, _ := json.Marshal(tt.body)
				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				r.ServeHTTP(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.False(t, called, "usecase must not run for invalid payloads")
			})
		}
	})
}

func TestTransactionHandler_List(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	uc := &mockTransactionUsecase{
		ListFunc: func(ctx context.Context, userID uint) ([]entity.Transaction, error) {
			assert.Equal(t, uint(7), userID)
			return []entity.Transaction{
				{ID: 2, Amount: 1200, Category: "Food", Type: entity.Expense, Date: date},
				{ID: 1, Amount: 50000, Category: "Salary", Type: entity.Income, Date: date.AddDate(0, 0, -10)},
			}, nil
		},
	}
	r := newTxRouter(uc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []dto.TransactionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res, 2)
	assert.Equal(t, "Food", res[0].Category)
	assert.Equal(t, "income", res[1].Type)
}

func TestTransactionHandler_Dashboard(t *testing.T) {
	uc := &mockTransactionUsecase{
		SummarizeFunc: func(ctx context.Context, userID uint) (usecase.Summary, error) {
			return usecase.Summary{
				TotalIncome:      90000,
				TotalExpenses:    4200,
				Balance:          85800,
				MonthlyIncome:    50000,
				MonthlyExpenses:  1200,
				TransactionCount: 4,
			}, nil
		},
	}
	r := newTxRouter(uc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_income": 90000,
		"total_expenses": 4200,
		"balance": 85800,
		"monthly_income": 50000,
		"monthly_expenses": 1200,
		"transaction_count": 4
	}`, w.Body.String())
}
