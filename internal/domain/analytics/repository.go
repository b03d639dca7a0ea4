package analytics

import (
	"context"
	"time"

	"budgetbuddy-go/internal/domain/budgets"
	"budgetbuddy-go/internal/domain/transactions"
)

type TransactionSource interface {
	ListMonth(ctx context.Context, userID, monthKey string, loc *time.Location) ([]transactions.Transaction, error)
}

type BudgetSource interface {
	GetBudget(ctx context.Context, userID, monthKey string) (*budgets.Budget, error)
}

type CategoryNames interface {
	Names(ctx context.Context, userID string) (map[string]string, error)
}
