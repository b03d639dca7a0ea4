package bills

import (
	"context"
	"errors"

	domain "budgetbuddy-go/internal/domain/bills"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListBills(ctx context.Context, userID string) ([]domain.Bill, error) {
	var items []domain.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date asc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	var bill domain.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, billID).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *PostgresRepository) CreateBill(ctx context.Context, bill *domain.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// UpdateBill writes every mutable column, including nil payment timestamps.
func (r *PostgresRepository) UpdateBill(ctx context.Context, bill *domain.Bill) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("id = ? AND user_id = ?", bill.ID, bill.UserID).
		Updates(map[string]interface{}{
			"name":         bill.Name,
			"amount":       bill.Amount,
			"due_date":     bill.DueDate,
			"recurring":    bill.Recurring,
			"paid_at":      bill.PaidAt,
			"last_paid_at": bill.LastPaidAt,
			"updated_at":   bill.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteBill(ctx context.Context, userID, billID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Bill{}, "user_id = ? AND id = ?", userID, billID)
	return result.RowsAffected > 0, result.Error
}
