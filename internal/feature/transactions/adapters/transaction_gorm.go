// Package adapters provides the repository implementations for the transactions feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"finance_backend/internal/feature/transactions/domain/entity"
	"finance_backend/internal/feature/transactions/usecase"
)

// transactionGorm is the GORM implementation of the TransactionRepository interface.
type transactionGorm struct {
	db *gorm.DB
}

// Compile-time check that transactionGorm implements TransactionRepository.
var _ usecase.TransactionRepository = (*transactionGorm)(nil)

// NewTransactionRepository creates a transactionGorm backed by the given connection.
func NewTransactionRepository(db *gorm.DB) *transactionGorm {
	return &transactionGorm{db: db}
}

// Create persists a transaction.
func (r *transactionGorm) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListByUser returns all transactions of one user ordered by date descending.
func (r *transactionGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
