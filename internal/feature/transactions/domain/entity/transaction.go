// Package entity defines the domain models for the transactions feature.
package entity

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// Income is money received.
	Income TransactionType = "income"
	// Expense is money spent.
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool { return t == Income || t == Expense }

// Transaction is a single income or expense entry belonging to one user.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Amount      float64         `gorm:"not null"`
	Category    string          `gorm:"size:50;not null"`
	Type        TransactionType `gorm:"column:transaction_type;size:20;not null"`
	Description string          `gorm:"size:200"`
	Date        time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time
}
