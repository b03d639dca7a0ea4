package transactions

import (
	"context"
	"time"
)

type Repository interface {
	// ListByRange returns the user's transactions with from <= date <= to,
	// newest first.
	ListByRange(ctx context.Context, userID string, from, to time.Time) ([]Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error)
}

// CategoryNamer resolves the display name captured into new transactions.
type CategoryNamer interface {
	CategoryName(ctx context.Context, userID, categoryID string) (string, error)
}
