package budgets

import (
	"context"
	"errors"

	domain "budgetbuddy-go/internal/domain/budgets"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBudgetByMonth(ctx context.Context, userID, monthKey string) (*domain.Budget, error) {
	var budget domain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_key = ?", userID, monthKey).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

// SaveBudget upserts on (user_id, month_key) so concurrent first writes for a
// month collapse into one row.
func (r *PostgresRepository) SaveBudget(ctx context.Context, budget *domain.Budget) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"overall_limit", "category_limits", "updated_at"}),
		}).
		Create(budget).Error
}

func (r *PostgresRepository) DeleteBudgetByMonth(ctx context.Context, userID, monthKey string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Budget{}, "user_id = ? AND month_key = ?", userID, monthKey)
	return result.RowsAffected > 0, result.Error
}
