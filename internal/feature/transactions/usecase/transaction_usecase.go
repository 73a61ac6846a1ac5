package usecase

import (
	"context"
	"strings"
	"time"

	"finance_backend/internal/feature/transactions/domain/entity"
)

// TransactionRepository abstracts the persistence layer for transactions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, tx *entity.Transaction) error
	// ListByUser returns all transactions of one user, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Transaction, error)
}

// Summary is the dashboard aggregate over one user's transactions.
type Summary struct {
	TotalIncome      float64
	TotalExpenses    float64
	Balance          float64
	MonthlyIncome    float64 // current calendar month
	MonthlyExpenses  float64 // current calendar month
	TransactionCount int
}

// transactionUsecase implements the transaction business logic.
type transactionUsecase struct {
	repo TransactionRepository
	now  func() time.Time // injectable clock for tests
}

// NewTransactionUsecase creates a new transactionUsecase.
func NewTransactionUsecase(repo TransactionRepository) *transactionUsecase {
	return &transactionUsecase{repo: repo, now: time.Now}
}

// Add validates and persists a new transaction for the given user.
// A zero date defaults to the current time.
func (u *transactionUsecase) Add(ctx context.Context, userID uint, amount float64, category string, typ entity.TransactionType, description string, date time.Time) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !typ.Valid() {
		return nil, ErrInvalidType
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if date.IsZero() {
		date = u.now()
	}

	tx := &entity.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Type:        typ,
		Description: description,
		Date:        date,
	}
	if err := u.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// List returns the user's transactions, newest first.
func (u *transactionUsecase) List(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Summarize computes the dashboard totals for one user.
func (u *transactionUsecase) Summarize(ctx context.Context, userID uint) (Summary, error) {
	txs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	now := u.now()
	var s Summary
	s.TransactionCount = len(txs)
	for _, tx := range txs {
		inMonth := tx.Date.Year() == now.Year() && tx.Date.Month() == now.Month()
		switch tx.Type {
		case entity.Income:
			s.TotalIncome += tx.Amount
			if inMonth {
				s.MonthlyIncome += tx.Amount
			}
		case entity.Expense:
			s.TotalExpenses += tx.Amount
			if inMonth {
				s.MonthlyExpenses += tx.Amount
			}
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s, nil
}
