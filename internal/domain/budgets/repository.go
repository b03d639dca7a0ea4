package budgets

import "context"

type Repository interface {
	GetBudgetByMonth(ctx context.Context, userID, monthKey string) (*Budget, error)
	// SaveBudget inserts or updates by ID.
	SaveBudget(ctx context.Context, budget *Budget) error
	DeleteBudgetByMonth(ctx context.Context, userID, monthKey string) (bool, error)
}
