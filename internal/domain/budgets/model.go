package budgets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the spending plan of one user for one month. A zero OverallLimit
// means no overall limit is set.
type Budget struct {
	ID             string                     `gorm:"type:uuid;primaryKey"`
	UserID         string                     `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_month"`
	MonthKey       string                     `gorm:"type:char(7);not null;uniqueIndex:idx_budgets_user_month"`
	OverallLimit   decimal.Decimal            `gorm:"type:numeric(12,2);not null;default:0"`
	CategoryLimits map[string]decimal.Decimal `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt      time.Time                  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                  `gorm:"autoUpdateTime"`
}

func (b Budget) HasOverallLimit() bool {
	return b.OverallLimit.IsPositive()
}

// UpsertBudgetInput is merged into the month's existing budget. A nil
// OverallLimit keeps the stored one; a zero category limit removes it.
type UpsertBudgetInput struct {
	UserID         string
	MonthKey       string
	OverallLimit   *decimal.Decimal
	CategoryLimits map[string]decimal.Decimal
}
