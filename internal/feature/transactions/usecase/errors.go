// Package usecase implements the business logic for the transactions feature.
package usecase

import "errors"

var (
	// ErrInvalidAmount is returned when a transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrInvalidType is returned for transaction types outside {income, expense}.
	ErrInvalidType = errors.New("transaction type must be income or expense")

	// ErrCategoryRequired is returned when a transaction has no category.
	ErrCategoryRequired = errors.New("transaction category is required")
)
