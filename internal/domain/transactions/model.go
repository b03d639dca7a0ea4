package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// FilterAll disables a type or payment method filter.
const FilterAll = "all"

const (
	OtherCategoryID   = "other"
	OtherCategoryName = "Other"
)

type Transaction struct {
	ID                   string          `gorm:"type:uuid;primaryKey"`
	UserID               string          `gorm:"type:uuid;index;not null"`
	Type                 Type            `gorm:"type:text;not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CategoryID           *string         `gorm:"type:uuid"`
	CategoryNameSnapshot string          `gorm:"type:text;not null;default:''"`
	Date                 time.Time       `gorm:"type:timestamptz;not null"`
	Note                 *string         `gorm:"type:text"`
	PaymentMethod        PaymentMethod   `gorm:"type:text;not null"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime"`
}

type MonthlyTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type CategoryBreakdownEntry struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

type DayGroup struct {
	Label   string        `json:"label"`
	DateKey string        `json:"date_key"`
	Date    time.Time     `json:"date"`
	Items   []Transaction `json:"items"`
}

// Filters narrows a transaction list. Zero values disable each filter.
type Filters struct {
	Type          string
	CategoryID    string
	PaymentMethod string
	Search        string
}

type CreateTransactionInput struct {
	UserID        string
	Type          Type
	Amount        decimal.Decimal
	CategoryID    *string
	Date          time.Time
	Note          *string
	PaymentMethod PaymentMethod
}

type UpdateTransactionInput struct {
	ID            string
	UserID        string
	Type          Type
	Amount        decimal.Decimal
	CategoryID    *string
	Date          time.Time
	Note          *string
	PaymentMethod PaymentMethod
}
