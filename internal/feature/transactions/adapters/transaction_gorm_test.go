package adapters

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance_backend/internal/feature/transactions/domain/entity"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Transaction{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestTransactionGorm_CreateAndList(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	seed := []entity.Transaction{
		{UserID: 1, Amount: 50000, Category: "Salary", Type: entity.Income, Date: base},
		{UserID: 1, Amount: 1200, Category: "Food", Type: entity.Expense, Date: base.AddDate(0, 0, 10)},
		{UserID: 1, Amount: 800, Category: "Transport", Type: entity.Expense, Date: base.AddDate(0, 0, 5)},
		{UserID: 2, Amount: 999, Category: "Other", Type: entity.Expense, Date: base},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	txs, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions for user 1, got %d", len(txs))
	}

	// Newest first.
	for i := 1; i < len(txs); i++ {
		if txs[i].Date.After(txs[i-1].Date) {
			t.Errorf("expected descending date order, got %v before %v", txs[i-1].Date, txs[i].Date)
		}
	}
	if txs[0].Category != "Food" {
		t.Errorf("expected the newest transaction first, got %q", txs[0].Category)
	}
}

func TestTransactionGorm_ListEmpty(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))

	txs, err := repo.ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected no transactions, got %d", len(txs))
	}
}
