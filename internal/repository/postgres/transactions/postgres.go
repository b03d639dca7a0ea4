package transactions

import (
	"context"
	"errors"
	"time"

	domain "budgetbuddy-go/internal/domain/transactions"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	var items []domain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date desc, created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, transactionID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, tx *domain.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Updates(map[string]interface{}{
			"type":                   tx.Type,
			"amount":                 tx.Amount,
			"category_id":            tx.CategoryID,
			"category_name_snapshot": tx.CategoryNameSnapshot,
			"date":                   tx.Date,
			"note":                   tx.Note,
			"payment_method":         tx.PaymentMethod,
			"updated_at":             tx.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}
